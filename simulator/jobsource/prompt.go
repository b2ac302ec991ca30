package jobsource

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
)

const promptName = "prompt"

type promptSource struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPromptSource asks for the number of jobs and then for each job's fields,
// reading whitespace separated integers from in.
func NewPromptSource(in io.Reader, out io.Writer) JobSource {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &promptSource{in: scanner, out: out}
}

func (s *promptSource) Jobs() ([]domain.Job, error) {
	n, err := s.ask("Enter the number of jobs: ")
	if err != nil {
		return nil, &InputError{Source: promptName, Err: err}
	}
	if n < 0 {
		return nil, &InputError{Source: promptName, Err: fmt.Errorf("number of jobs must not be negative: %d", n)}
	}

	records := []jobRecord{}
	for i := 1; i <= n; i++ {
		fmt.Fprintf(s.out, "Enter details for Job %d:\n", i)
		r := jobRecord{}
		for _, q := range []struct {
			prompt string
			value  *int
		}{
			{"Arrival Time (hours): ", &r.ArrivalTime},
			{"Cores Required: ", &r.Cores},
			{"Memory Required (GB): ", &r.Memory},
			{"Execution Time (hours): ", &r.ExecutionTime},
		} {
			if *q.value, err = s.ask(q.prompt); err != nil {
				return nil, &InputError{Source: promptName, Row: i, Err: err}
			}
		}
		records = append(records, r)
	}
	return toJobs(promptName, records)
}

func (s *promptSource) ask(prompt string) (int, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return 0, err
		}
		return 0, errors.Wrap(io.ErrUnexpectedEOF, strings.TrimSpace(prompt))
	}
	return strconv.Atoi(s.in.Text())
}
