package referendum

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

// resultHeader is the fixed column set of the result table. Naming follows
// the source export so the output lines up with the input vocabulary.
var resultHeader = []string{
	"code_reg", "name_reg", "Registered", "Abstentions", "Null", "Choice A", "Choice B", "ratio",
}

// WriteCSV writes the result table as comma-separated text with one header
// row. An undefined ratio is written as an empty cell.
func (t ResultTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultHeader); err != nil {
		return err
	}
	for _, r := range t {
		ratio := ""
		if v := r.Ratio(); !math.IsNaN(v) {
			ratio = strconv.FormatFloat(v, 'f', -1, 64)
		}
		row := []string{
			r.RegionCode,
			r.RegionName,
			strconv.FormatInt(r.Registered, 10),
			strconv.FormatInt(r.Abstentions, 10),
			strconv.FormatInt(r.Null, 10),
			strconv.FormatInt(r.ChoiceA, 10),
			strconv.FormatInt(r.ChoiceB, 10),
			ratio,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
