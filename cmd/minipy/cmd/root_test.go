package cmd

import "testing"

func TestReadSourceMissingFile(t *testing.T) {
	_, err := readSource([]string{"foo.py"})
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	want := "\x1b[31mError:\x1b[m Unable to open file: 'foo.py'\n"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
