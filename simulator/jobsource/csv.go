package jobsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
)

const csvFields = 4

type csvSource struct {
	r io.Reader
}

// NewCSVSource reads rows of arrival,cores,memory,exec. A first row that
// doesn't start with a number is taken as a header and skipped.
func NewCSVSource(r io.Reader) JobSource {
	return &csvSource{r: r}
}

func (s *csvSource) Jobs() ([]domain.Job, error) {
	reader := csv.NewReader(s.r)
	reader.FieldsPerRecord = csvFields
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records := []jobRecord{}
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &InputError{Source: CSVFormat, Row: row, Err: err}
		}
		if row == 1 && isHeader(fields) {
			row--
			continue
		}
		values := [csvFields]int{}
		for i, f := range fields {
			if values[i], err = strconv.Atoi(strings.TrimSpace(f)); err != nil {
				return nil, &InputError{Source: CSVFormat, Row: row, Err: fmt.Errorf("field %d: %v", i+1, err)}
			}
		}
		records = append(records, jobRecord{
			ArrivalTime:   values[0],
			Cores:         values[1],
			Memory:        values[2],
			ExecutionTime: values[3],
		})
	}
	return toJobs(CSVFormat, records)
}

func isHeader(fields []string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	return err != nil
}
