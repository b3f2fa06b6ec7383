package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hamza203508/refmap/pkg/errors"
	"github.com/Hamza203508/refmap/pkg/referendum"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReferendum(t *testing.T) {
	path := writeFile(t, "referendum.csv",
		"Department code;Department name;Town code;Town name;Registered;Abstentions;Null;Choice A;Choice B\n"+
			"1;Ain;004;Ambérieu-en-Bugey;100;20;5;60;40\n"+
			"ZZ;Français de l'étranger;;;50;10;0;30;10\n")

	records, err := LoadReferendum(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Codes are kept raw here; normalization belongs to the join stage.
	require.Equal(t, referendum.VoteRecord{
		DepartmentCode: "1",
		Registered:     100,
		Abstentions:    20,
		Null:           5,
		ChoiceA:        60,
		ChoiceB:        40,
	}, records[0])
	require.Equal(t, "ZZ", records[1].DepartmentCode)
}

func TestLoadReferendumMissingColumn(t *testing.T) {
	path := writeFile(t, "referendum.csv",
		"Department code;Registered;Abstentions;Null;Choice A\n1;100;20;5;60\n")

	_, err := LoadReferendum(path)
	require.ErrorIs(t, err, errors.ErrMissingField)

	var mf *errors.MissingFieldError
	require.ErrorAs(t, err, &mf)
	require.Equal(t, "Choice B", mf.Field)
}

func TestLoadReferendumBadCount(t *testing.T) {
	path := writeFile(t, "referendum.csv",
		"Department code;Registered;Abstentions;Null;Choice A;Choice B\n"+
			"1;100;20;5;abc;40\n")

	_, err := LoadReferendum(path)
	require.ErrorIs(t, err, errors.ErrInvalidInput)

	var pe *errors.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 2, pe.Line)
	require.Equal(t, "Choice A", pe.Field)
}

func TestLoadReferendumNegativeCount(t *testing.T) {
	path := writeFile(t, "referendum.csv",
		"Department code;Registered;Abstentions;Null;Choice A;Choice B\n"+
			"1;-1;0;0;0;0\n")

	_, err := LoadReferendum(path)
	require.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestLoadRegions(t *testing.T) {
	path := writeFile(t, "regions.csv",
		"id,code,name,slug\n1,84,Auvergne-Rhône-Alpes,auvergne-rhone-alpes\n2,93,Provence-Alpes-Côte d'Azur,paca\n")

	regions, err := LoadRegions(path)
	require.NoError(t, err)
	require.Equal(t, []referendum.Region{
		{Code: "84", Name: "Auvergne-Rhône-Alpes"},
		{Code: "93", Name: "Provence-Alpes-Côte d'Azur"},
	}, regions)
}

func TestLoadDepartments(t *testing.T) {
	path := writeFile(t, "departments.csv",
		"id,region_code,code,name,slug\n1,84,01,Ain,ain\n")

	departments, err := LoadDepartments(path)
	require.NoError(t, err)
	require.Equal(t, []referendum.Department{
		{Code: "01", Name: "Ain", RegionCode: "84"},
	}, departments)
}

func TestLoadRegionsLatin1Fallback(t *testing.T) {
	// "Bourgogne-Franche-Comté" with é encoded as Latin-1 0xE9.
	content := append([]byte("id,code,name,slug\n1,27,Bourgogne-Franche-Comt"), 0xE9)
	content = append(content, []byte(",bfc\n")...)
	path := filepath.Join(t.TempDir(), "regions.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	regions, err := LoadRegions(path)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	require.Equal(t, "Bourgogne-Franche-Comté", regions[0].Name)
}

func TestLoadRegionsBOMHeader(t *testing.T) {
	path := writeFile(t, "regions.csv", "\ufeffid,code,name,slug\n1,84,Auvergne-Rhône-Alpes,ara\n")

	regions, err := LoadRegions(path)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	require.Equal(t, "84", regions[0].Code)
}

func TestMissingFileIsFatal(t *testing.T) {
	_, err := LoadRegions(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)

	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "read", ioErr.Op)
}

func TestEmptyFile(t *testing.T) {
	path := writeFile(t, "regions.csv", "")
	_, err := LoadRegions(path)
	require.ErrorIs(t, err, errors.ErrInvalidInput)
}
