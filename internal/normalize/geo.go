package normalize

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/loglens/loglens/internal/record"
)

// geoRange is one parsed row of a flat CIDR-to-location database.
type geoRange struct {
	network *net.IPNet
	country string
	city    string
}

// GeoStep annotates Network.SrcIP/DstIP with a country and city looked up
// in an in-memory table of CIDR ranges, loaded once from a flat CSV/TSV
// file (columns: cidr,country,city). It does no network I/O, unlike
// HostnameStep: the table is read once at startup and held in memory for
// the life of the process.
type GeoStep struct {
	ranges []geoRange
}

// LoadGeoStep reads a CSV or TSV file of cidr,country,city rows (no
// header) and builds a GeoStep from it.
func LoadGeoStep(path string, delimiter rune) (*GeoStep, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = delimiter
	r.FieldsPerRecord = -1

	var ranges []geoRange
	for {
		rowNum := len(ranges) + 1
		row, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("geo db %s: row %d: %w", path, rowNum, err)
		}
		if len(row) < 2 {
			continue
		}
		_, network, err := net.ParseCIDR(row[0])
		if err != nil {
			continue
		}
		gr := geoRange{network: network, country: row[1]}
		if len(row) >= 3 {
			gr.city = row[2]
		}
		ranges = append(ranges, gr)
	}
	return &GeoStep{ranges: ranges}, nil
}

func (s *GeoStep) Normalize(r record.Record) (record.Record, error) {
	if r.Network == nil {
		return r, nil
	}
	if country, city, ok := s.lookup(r.Network.SrcIP); ok {
		r.Extra["src_country"] = country
		if city != "" {
			r.Extra["src_city"] = city
		}
	}
	if country, city, ok := s.lookup(r.Network.DstIP); ok {
		r.Extra["dst_country"] = country
		if city != "" {
			r.Extra["dst_city"] = city
		}
	}
	return r, nil
}

func (s *GeoStep) lookup(ip string) (country, city string, ok bool) {
	if ip == "" {
		return "", "", false
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", "", false
	}
	for _, gr := range s.ranges {
		if gr.network.Contains(parsed) {
			return gr.country, gr.city, true
		}
	}
	return "", "", false
}
