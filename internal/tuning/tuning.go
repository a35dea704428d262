// Package tuning holds the reference pitch tables for six-string tunings.
package tuning

// Note pairs a pitch name with its fundamental frequency in Hz.
type Note struct {
	Name      string
	Frequency float64
}

// NumStrings is the number of strings a tuning covers.
const NumStrings = 6

// Tuning lists the open-string pitches, lowest string first.
type Tuning [NumStrings]Note

// Standard is six-string standard tuning.
var Standard = Tuning{
	{Name: "E2", Frequency: 82.41},
	{Name: "A2", Frequency: 110.00},
	{Name: "D3", Frequency: 146.83},
	{Name: "G3", Frequency: 196.00},
	{Name: "B3", Frequency: 246.94},
	{Name: "E4", Frequency: 329.63},
}

// DropD lowers the sixth string a whole tone.
var DropD = Tuning{
	{Name: "D2", Frequency: 73.42},
	{Name: "A2", Frequency: 110.00},
	{Name: "D3", Frequency: 146.83},
	{Name: "G3", Frequency: 196.00},
	{Name: "B3", Frequency: 246.94},
	{Name: "E4", Frequency: 329.63},
}

var byName = map[string]Tuning{
	"standard": Standard,
	"dropd":    DropD,
}

// Named looks up a tuning by its configuration name.
func Named(name string) (Tuning, bool) {
	t, ok := byName[name]
	return t, ok
}

// Frequencies returns just the open-string frequencies, lowest string first,
// in the shape the voice bank consumes.
func (t Tuning) Frequencies() [NumStrings]float64 {
	var frequencies [NumStrings]float64
	for i, note := range t {
		frequencies[i] = note.Frequency
	}
	return frequencies
}
