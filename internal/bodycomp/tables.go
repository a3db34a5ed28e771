package bodycomp

import (
	"bytes"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spigell/recruiter/internal/candidate"
)

//go:embed tables/*.csv
var embedded embed.FS

// HeightWeightTable holds screening weight limits by height, sex and age band.
type HeightWeightTable struct {
	Bands  []Band
	limits map[htwtKey][]int
}

type htwtKey struct {
	height int
	sex    candidate.Sex
}

// HTWTRow is one line of the screening table.
type HTWTRow struct {
	Height int
	Sex    candidate.Sex
	Limits []int
}

// Limit is the maximum screening weight, absent when the table has no row for
// the height and sex or no band contains age.
func (t *HeightWeightTable) Limit(height int, sex candidate.Sex, age *int) (int, bool) {
	if t == nil {
		return 0, false
	}
	limits, ok := t.limits[htwtKey{height: height, sex: sex}]
	if !ok {
		return 0, false
	}
	idx, ok := bandIndex(t.Bands, age)
	if !ok {
		return 0, false
	}
	return limits[idx], true
}

func (t *HeightWeightTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.limits)
}

// BFStandard is the body fat ceiling for an age band.
type BFStandard struct {
	Band   Band
	Male   int
	Female int
}

type BodyFatLimits struct {
	Standards []BFStandard
}

// Max is the body fat ceiling for sex and age, using the first matching band.
func (t *BodyFatLimits) Max(sex candidate.Sex, age *int) (int, bool) {
	if t == nil || age == nil {
		return 0, false
	}
	for _, s := range t.Standards {
		if !s.Band.Contains(*age) {
			continue
		}
		switch sex {
		case candidate.SexMale:
			return s.Male, true
		case candidate.SexFemale:
			return s.Female, true
		default:
			return 0, false
		}
	}
	return 0, false
}

// OneSiteCell is a body fat estimate for one weight bucket.
type OneSiteCell struct {
	Weight  int
	Percent int
}

type OneSiteRow struct {
	Waist int
	// Cells keep the column order of the chart. Blank cells are left out.
	Cells []OneSiteCell
}

// CircumferenceChart estimates body fat from waist circumference and weight.
type CircumferenceChart struct {
	Rows []OneSiteRow
}

// Estimate looks up the row with the nearest waist and, within it, the exact
// weight bucket or failing that the nearest one. Ties go to whichever came
// first in the chart.
func (c *CircumferenceChart) Estimate(waist, bucket int) (int, bool) {
	if c == nil || len(c.Rows) == 0 {
		return 0, false
	}

	row := c.Rows[0]
	best := absDiff(row.Waist, waist)
	for _, r := range c.Rows[1:] {
		if d := absDiff(r.Waist, waist); d < best {
			row, best = r, d
		}
	}

	if len(row.Cells) == 0 {
		return 0, false
	}
	for _, cell := range row.Cells {
		if cell.Weight == bucket {
			return cell.Percent, true
		}
	}

	nearest := row.Cells[0]
	best = absDiff(nearest.Weight, bucket)
	for _, cell := range row.Cells[1:] {
		if d := absDiff(cell.Weight, bucket); d < best {
			nearest, best = cell, d
		}
	}
	return nearest.Percent, true
}

// Tables bundles the reference data the evaluator reads.
type Tables struct {
	HeightWeight *HeightWeightTable
	BodyFat      *BodyFatLimits
	Charts       map[candidate.Sex]*CircumferenceChart
}

// Default returns the tables compiled into the binary. They are parsed once
// and must not be modified.
var Default = sync.OnceValue(func() *Tables {
	tables, err := loadEmbedded()
	if err != nil {
		panic(fmt.Sprintf("embedded body composition tables: %v", err))
	}
	return tables
})

func loadEmbedded() (*Tables, error) {
	read := func(name string) (io.Reader, error) {
		data, err := embedded.ReadFile("tables/" + name)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}

	r, err := read("height_weight.csv")
	if err != nil {
		return nil, err
	}
	htwt, _, err := ParseHeightWeight(r)
	if err != nil {
		return nil, fmt.Errorf("height_weight.csv: %w", err)
	}

	r, err = read("body_fat.csv")
	if err != nil {
		return nil, err
	}
	bf, _, err := ParseBodyFatLimits(r)
	if err != nil {
		return nil, fmt.Errorf("body_fat.csv: %w", err)
	}

	charts := make(map[candidate.Sex]*CircumferenceChart, 2)
	for sex, name := range map[candidate.Sex]string{
		candidate.SexMale:   "circumference_male.csv",
		candidate.SexFemale: "circumference_female.csv",
	} {
		r, err := read(name)
		if err != nil {
			return nil, err
		}
		chart, _, err := ParseCircumferenceChart(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		charts[sex] = chart
	}

	return &Tables{HeightWeight: htwt, BodyFat: bf, Charts: charts}, nil
}

// ParseHeightWeight reads "height,sex,<band>..." rows. Rows with the wrong
// number of cells, an unknown sex or non-integer values are skipped and
// counted; a header that does not describe bands is an error.
func ParseHeightWeight(r io.Reader) (*HeightWeightTable, int, error) {
	header, rows, skipped, err := readTable(r)
	if err != nil {
		return nil, 0, err
	}
	if len(header) < 3 {
		return nil, 0, errors.New("header must be height,sex followed by age bands")
	}

	bands := make([]Band, 0, len(header)-2)
	for _, cell := range header[2:] {
		band, err := ParseBand(cell)
		if err != nil {
			return nil, 0, fmt.Errorf("header: %w", err)
		}
		bands = append(bands, band)
	}

	table := &HeightWeightTable{Bands: bands, limits: make(map[htwtKey][]int, len(rows))}
	for _, cells := range rows {
		row, ok := parseHTWTRow(cells, len(bands))
		if !ok {
			skipped++
			continue
		}
		table.limits[htwtKey{height: row.Height, sex: row.Sex}] = row.Limits
	}
	return table, skipped, nil
}

func parseHTWTRow(cells []string, bands int) (HTWTRow, bool) {
	if len(cells) != bands+2 {
		return HTWTRow{}, false
	}
	height, err := strconv.Atoi(cells[0])
	if err != nil {
		return HTWTRow{}, false
	}
	sex, err := candidate.ParseSex(cells[1])
	if err != nil {
		return HTWTRow{}, false
	}
	limits, ok := atoiAll(cells[2:])
	if !ok {
		return HTWTRow{}, false
	}
	return HTWTRow{Height: height, Sex: sex, Limits: limits}, true
}

// ParseBodyFatLimits reads "age,male,female" rows.
func ParseBodyFatLimits(r io.Reader) (*BodyFatLimits, int, error) {
	header, rows, skipped, err := readTable(r)
	if err != nil {
		return nil, 0, err
	}
	if len(header) != 3 {
		return nil, 0, errors.New("header must be age,male,female")
	}

	table := &BodyFatLimits{}
	for _, cells := range rows {
		if len(cells) != 3 {
			skipped++
			continue
		}
		band, err := ParseBand(cells[0])
		if err != nil {
			skipped++
			continue
		}
		values, ok := atoiAll(cells[1:])
		if !ok {
			skipped++
			continue
		}
		table.Standards = append(table.Standards, BFStandard{Band: band, Male: values[0], Female: values[1]})
	}
	return table, skipped, nil
}

// ParseCircumferenceChart reads "waist,w<weight>..." rows. Blank cells mean the
// chart has no estimate for that bucket.
func ParseCircumferenceChart(r io.Reader) (*CircumferenceChart, int, error) {
	header, rows, skipped, err := readTable(r)
	if err != nil {
		return nil, 0, err
	}
	if len(header) < 2 {
		return nil, 0, errors.New("header must be waist followed by weight buckets")
	}

	buckets := make([]int, 0, len(header)-1)
	for _, cell := range header[1:] {
		weight, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(cell), "w"))
		if err != nil {
			return nil, 0, fmt.Errorf("header: weight bucket %q: %w", cell, err)
		}
		buckets = append(buckets, weight)
	}

	chart := &CircumferenceChart{}
	for _, cells := range rows {
		row, ok := parseOneSiteRow(cells, buckets)
		if !ok {
			skipped++
			continue
		}
		chart.Rows = append(chart.Rows, row)
	}
	return chart, skipped, nil
}

func parseOneSiteRow(cells []string, buckets []int) (OneSiteRow, bool) {
	if len(cells) != len(buckets)+1 {
		return OneSiteRow{}, false
	}
	waist, err := strconv.Atoi(cells[0])
	if err != nil {
		return OneSiteRow{}, false
	}

	row := OneSiteRow{Waist: waist}
	for i, cell := range cells[1:] {
		if cell == "" {
			continue
		}
		percent, err := strconv.Atoi(cell)
		if err != nil {
			return OneSiteRow{}, false
		}
		row.Cells = append(row.Cells, OneSiteCell{Weight: buckets[i], Percent: percent})
	}
	return row, true
}

// readTable splits comma separated text into a header and data rows. Blank
// lines and lines starting with # are ignored, cells are trimmed, and records
// the csv reader rejects are counted as skipped.
func readTable(r io.Reader) ([]string, [][]string, int, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		header  []string
		rows    [][]string
		skipped int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, nil, 0, err
		}

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}

	if header == nil {
		return nil, nil, 0, errors.New("table is empty")
	}
	return header, rows, skipped, nil
}

func atoiAll(cells []string) ([]int, bool) {
	values := make([]int, 0, len(cells))
	for _, cell := range cells {
		v, err := strconv.Atoi(cell)
		if err != nil {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
