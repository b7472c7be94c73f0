package spectrum

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/errors"
)

// jsonSpectrum mirrors the export shape of the companion acquisition tools.
type jsonSpectrum struct {
	Energies        []float64 `json:"energies"`
	Counts          []float64 `json:"counts"`
	IsCalibrated    bool      `json:"is_calibrated"`
	AcquisitionTime float64   `json:"acquisition_time_s"`
	Detector        string    `json:"detector"`
}

// LoadFile reads a spectrum from a .csv or .json file based on extension.
func LoadFile(path string) (*Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.FileError(err, path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".csv", ".txt":
		return ReadCSV(f)
	default:
		return nil, errors.Newf("unsupported spectrum file extension %q", filepath.Ext(path)).
			Category(errors.CategoryFileParsing).
			Context("path", path).
			Build()
	}
}

// ReadJSON decodes a JSON spectrum export.
func ReadJSON(r io.Reader) (*Spectrum, error) {
	var js jsonSpectrum
	if err := json.NewDecoder(r).Decode(&js); err != nil {
		return nil, errors.New(err).Category(errors.CategoryFileParsing).Build()
	}
	s := &Spectrum{
		Energies:        js.Energies,
		Counts:          js.Counts,
		IsCalibrated:    js.IsCalibrated,
		AcquisitionTime: time.Duration(js.AcquisitionTime * float64(time.Second)),
		Detector:        js.Detector,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadCSV decodes "energy,counts" rows, skipping a header row when the first
// field is not numeric. Single-column files are treated as counts with a raw
// channel-index energy axis.
func ReadCSV(r io.Reader) (*Spectrum, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	s := &Spectrum{}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(err).Category(errors.CategoryFileParsing).Build()
		}
		row++
		if len(record) == 0 {
			continue
		}
		first, ferr := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if ferr != nil {
			if row == 1 {
				continue // header
			}
			return nil, errors.Newf("non-numeric value %q at row %d", record[0], row).
				Category(errors.CategoryFileParsing).
				Build()
		}
		if len(record) >= 2 {
			count, cerr := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
			if cerr != nil {
				return nil, errors.Newf("non-numeric count %q at row %d", record[1], row).
					Category(errors.CategoryFileParsing).
					Build()
			}
			s.Energies = append(s.Energies, first)
			s.Counts = append(s.Counts, count)
		} else {
			s.Energies = append(s.Energies, float64(len(s.Counts)))
			s.Counts = append(s.Counts, first)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.IsCalibrated = s.LooksCalibrated()
	return s, nil
}
