package tuning

import "testing"

func TestNamed(t *testing.T) {
	t.Parallel()

	if _, ok := Named("standard"); !ok {
		t.Error(`Named("standard") not found`)
	}
	if _, ok := Named("dropd"); !ok {
		t.Error(`Named("dropd") not found`)
	}
	if _, ok := Named("lute"); ok {
		t.Error(`Named("lute") found, want miss`)
	}
}

func TestFrequenciesAscend(t *testing.T) {
	t.Parallel()

	for name, tuning := range byName {
		frequencies := tuning.Frequencies()
		for i := 1; i < NumStrings; i++ {
			if frequencies[i] <= frequencies[i-1] {
				t.Errorf("%s: string %d (%v Hz) not above string %d (%v Hz)",
					name, i, frequencies[i], i-1, frequencies[i-1])
			}
		}
	}
}
