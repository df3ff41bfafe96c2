// Command genmock writes a synthetic FLUXNET2015 station tree for local runs
// and demos. Values follow smooth seasonal and diurnal cycles with a fixed
// share of gaps, so output is reproducible for a given seed.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/mock \
//	  -sites AT-Neu,CH-Cha \
//	  -years 2002-2003
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/fluxcdf/internal/domain"
)

// columns of every generated file, after the time columns.
var columns = []string{"TA_F_MDS", "TA_F_MDS_QC", "TS_F_MDS_1", "TS_F_MDS_2", "NEE_VUT_REF", "NEE_CUT_50", "P_F"}

// gapRate is the share of cells written as the fill value.
const gapRate = 0.02

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "data root to create")
	sites := flag.String("sites", "AT-Neu", "comma separated site codes")
	years := flag.String("years", "2002-2002", "first-last year")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	first, last, err := parseYears(*years)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	for _, site := range strings.Split(*sites, ",") {
		site = strings.TrimSpace(site)
		if site == "" {
			continue
		}
		dir, err := writeStation(*out, site, first, last, rng)
		if err != nil {
			return fmt.Errorf("%s: %w", site, err)
		}
		fmt.Printf("Wrote %s\n", dir)
	}
	return nil
}

func parseYears(s string) (first, last int, err error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		b = a
	}
	if first, err = strconv.Atoi(a); err != nil {
		return 0, 0, fmt.Errorf("invalid years %q", s)
	}
	if last, err = strconv.Atoi(b); err != nil || last < first {
		return 0, 0, fmt.Errorf("invalid years %q", s)
	}
	return first, last, nil
}

// writeStation writes the HH, DD, WW and YY files of one site and returns the
// station directory.
func writeStation(root, site string, first, last int, rng *rand.Rand) (string, error) {
	span := fmt.Sprintf("%d-%d", first, last)
	dir := filepath.Join(root, fmt.Sprintf("FLX_%s_FLUXNET2015_%s_%s_1-4", site, domain.FullSet, span))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	start := time.Date(first, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(last+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	for _, agg := range []domain.Aggregation{domain.HalfHourly, domain.Daily, domain.Weekly, domain.Yearly} {
		name := fmt.Sprintf("FLX_%s_FLUXNET2015_%s_%s_%s_1-4.csv", site, domain.FullSet, agg, span)
		if err := writeFile(filepath.Join(dir, name), agg, start, end, rng); err != nil {
			return "", err
		}
	}
	return dir, nil
}

func writeFile(path string, agg domain.Aggregation, start, end time.Time, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	// HH and WW rows are intervals; DD and YY rows are points.
	interval := agg == domain.HalfHourly || agg == domain.Weekly
	header := []string{"TIMESTAMP"}
	if interval {
		header = []string{"TIMESTAMP_START", "TIMESTAMP_END"}
	}
	if err := w.Write(append(header, columns...)); err != nil {
		return err
	}

	layout := stampLayout(agg)
	for t := start; t.Before(end); t = next(agg, t) {
		row := []string{t.Format(layout)}
		if interval {
			row = append(row, next(agg, t).Format(layout))
		}
		for _, v := range sample(t, rng) {
			if rng.Float64() < gapRate {
				v = domain.FillValue
			}
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func stampLayout(agg domain.Aggregation) string {
	switch agg {
	case domain.HalfHourly:
		return "200601021504"
	case domain.Yearly:
		return "2006"
	default:
		return "20060102"
	}
}

func next(agg domain.Aggregation, t time.Time) time.Time {
	switch agg {
	case domain.HalfHourly:
		return t.Add(30 * time.Minute)
	case domain.Weekly:
		return t.AddDate(0, 0, 7)
	case domain.Yearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// sample returns one value per column for time t.
func sample(t time.Time, rng *rand.Rand) []float64 {
	season := math.Sin(2 * math.Pi * (float64(t.YearDay()) - 110) / 365)
	day := math.Sin(2 * math.Pi * (float64(t.Hour()*60+t.Minute()) - 360) / 1440)
	noise := func(scale float64) float64 { return rng.NormFloat64() * scale }

	ta := round(8+12*season+4*day+noise(1), 3)
	nee := round(-2*math.Max(season, 0)*math.Max(day, 0)+1+noise(0.5), 3)
	return []float64{
		ta,
		float64(rng.IntN(4)),
		round(ta*0.6+3, 3),
		round(ta*0.4+5, 3),
		nee,
		round(nee+noise(0.1), 3),
		round(math.Max(0, noise(0.8)), 1),
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
