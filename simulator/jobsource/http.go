package jobsource

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
)

const DefaultHttpTries = 3

// Client is the part of *http.Client and *pester.Client used to fetch job files.
type Client interface {
	Do(req *http.Request) (resp *http.Response, err error)
}

func MakePesterClient() *pester.Client {
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = DefaultHttpTries
	client.LogHook = func(e pester.ErrEntry) {
		log.Errorf("Retrying after failed attempt: %+v", e)
	}
	return client
}

type httpSource struct {
	uri    string
	format string
	client Client
}

// NewHTTPSource fetches a job file with a GET on uri. The extension of the
// uri's path selects the format.
func NewHTTPSource(uri string, client Client) (JobSource, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, &InputError{Source: uri, Err: err}
	}
	format, err := FormatOf(u.Path)
	if err != nil {
		return nil, &InputError{Source: uri, Err: err}
	}
	return &httpSource{uri: uri, format: format, client: client}, nil
}

func (s *httpSource) Jobs() ([]domain.Job, error) {
	log.Infof("Fetching jobs from %s", s.uri)
	req, err := http.NewRequest("GET", s.uri, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't create request for %s", s.uri)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't fetch %s", s.uri)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Errorf("Fetch response status error: %s %v", s.uri, resp.Status)
		return nil, fmt.Errorf("couldn't fetch %s: %s", s.uri, resp.Status)
	}

	src, err := NewSource(s.format, resp.Body)
	if err != nil {
		return nil, err
	}
	jobs, err := src.Jobs()
	if ie, ok := err.(*InputError); ok {
		ie.Source = s.uri
	}
	return jobs, err
}
