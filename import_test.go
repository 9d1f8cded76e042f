package edispec_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/reoring/edispec"
	"github.com/reoring/edispec/model"
)

const scenarioA = `{"TransactionSetId":"810","Name":"Invoice","Version":"005010","Loops":[{"Id":"ST_LOOP","Name":"Transaction Set Header","Req":"M","Max":1,"Segments":[{"Id":"ST","Name":"Transaction Set Header","Req":"M","Max":1,"Elements":[{"Id":"ST01","Name":"Transaction Set Identifier Code","DataType":"ID","MinLength":3,"MaxLength":3,"Req":"M","Codes":[{"Code":"810","Description":"Invoice"}]}]}],"Loops":[]}]}`

const scenarioC = `
openapi: 3.0.1
components:
  schemas:
    TS810:
      type: object
      x-openedi-message-id: "810"
      properties:
        Model:
          type: string
        ST:
          $ref: '#/components/schemas/ST'
    ST:
      type: object
      x-openedi-segment-id: ST
      required:
        - TransactionSetIdentifierCode_01
      properties:
        TransactionSetIdentifierCode_01:
          type: string
          format: X12_ID
          minLength: 3
          maxLength: 3
`

func deterministic() edispec.Options {
	var mu sync.Mutex
	n := 0
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return edispec.Options{
		IDs: func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%04d", n)
		},
		Now: func() time.Time { return ts },
	}
}

func TestImport_ScenarioA_Legacy(t *testing.T) {
	spec, diag, err := edispec.Import([]byte(scenarioA), edispec.Options{})
	require.NoError(t, err)
	assert.False(t, diag.HasWarnings())

	assert.Equal(t, "810", spec.Metadata.TransactionSet)
	assert.Equal(t, spec.Metadata.CreatedDate, spec.Metadata.ModifiedDate)
	require.Len(t, spec.Loops, 1)
	loop := spec.Loops[0]
	assert.Equal(t, "ST_LOOP", loop.Name)
	assert.Equal(t, model.Usage("M"), loop.Usage)
	require.Len(t, loop.Segments, 1)
	require.Len(t, loop.Segments[0].Elements, 1)
	el := loop.Segments[0].Elements[0]
	assert.Equal(t, []model.CodeValue{{Code: "810", Description: "Invoice", Included: true}}, el.CodeValues)
}

func TestImport_LegacyArrayUsesFirst(t *testing.T) {
	spec, diag, err := edispec.Import([]byte("["+scenarioA+`,{"TransactionSetId":"850"}]`), edispec.Options{})
	require.NoError(t, err)
	assert.Equal(t, "810", spec.Metadata.TransactionSet)
	assert.True(t, diag.HasWarnings())
}

func TestImport_LegacyYAMLUnquotedScalars(t *testing.T) {
	src := `
TransactionSetId: 810
Name: Invoice
Version: 005010
Loops:
  - Id: ST_LOOP
    Req: M
    Max: 1
    Segments:
      - Id: ST
        Req: M
        Elements:
          - Id: ST01
            DataType: ID
            MinLength: 3
            MaxLength: 3
            Req: M
            Codes:
              - Code: 810
                Description: Invoice
              - Code: 0810
                Description: Padded
`
	spec, _, err := edispec.Import([]byte(src), edispec.Options{})
	require.NoError(t, err)
	assert.Equal(t, "810", spec.Metadata.TransactionSet)
	assert.Equal(t, "005010", spec.Metadata.EDIVersion)
	assert.Equal(t, "810 Invoice", spec.Metadata.Name)
	el := spec.Loops[0].Segments[0].Elements[0]
	assert.Equal(t, []model.CodeValue{
		{Code: "810", Description: "Invoice", Included: true},
		{Code: "0810", Description: "Padded", Included: true},
	}, el.CodeValues)
	assert.Equal(t, el.CodeValues, el.BaseCodes)
}

func TestImport_LegacyNumericCodes(t *testing.T) {
	src := `{"TransactionSetId":850,"Loops":[{"Id":"BEG","Segments":[{"Id":"BEG","Elements":[{"Id":"BEG01","Codes":[{"Code":1,"Description":"One"}]}]}]}]}`
	spec, _, err := edispec.Import([]byte(src), edispec.Options{})
	require.NoError(t, err)
	assert.Equal(t, "850", spec.Metadata.TransactionSet)
	assert.Equal(t, "1", spec.Loops[0].Segments[0].Elements[0].CodeValues[0].Code)
}

func TestImport_DuplicateKeyWarns(t *testing.T) {
	spec, diag, err := edispec.Import([]byte(`{"TransactionSetId":"850","TransactionSetId":"810","Loops":[]}`), edispec.Options{})
	require.NoError(t, err)
	assert.Equal(t, "810", spec.Metadata.TransactionSet)
	require.Len(t, diag.Warnings(), 1)
	assert.Contains(t, diag.Warnings()[0], `duplicate key "TransactionSetId"`)
}

func TestImport_ScenarioB_EmptyArray(t *testing.T) {
	_, _, err := edispec.Import([]byte(` [ ] `), edispec.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, edispec.ErrEmptySpecArray)
	ie, ok := edispec.AsImportError(err)
	require.True(t, ok)
	assert.Equal(t, edispec.CodeEmptySpecArray, ie.Code)
	assert.Contains(t, ie.Localized(), "empty specification array")
}

func TestImport_ScenarioC_OpenEDI(t *testing.T) {
	spec, _, err := edispec.Import([]byte(scenarioC), edispec.Options{})
	require.NoError(t, err)
	require.Len(t, spec.Loops, 1)
	top := spec.Loops[0]
	assert.Equal(t, "TS810", top.Name)
	require.Len(t, top.Segments, 1)
	seg := top.Segments[0]
	assert.Equal(t, "ST", seg.Name)
	require.Len(t, seg.Elements, 1)
	el := seg.Elements[0]
	assert.Equal(t, model.Mandatory, el.Usage)
	assert.Equal(t, model.DataType("ID"), el.DataType)
	assert.Equal(t, 3, el.MinLength)
	assert.Equal(t, 3, el.MaxLength)
}

func TestImport_OpenEDIYAMLUnquotedCodes(t *testing.T) {
	src := `
openapi: 3.0.1
components:
  schemas:
    TS810:
      x-openedi-message-id: 810
      properties:
        BIG:
          $ref: '#/components/schemas/BIG'
    BIG:
      x-openedi-segment-id: BIG
      properties:
        TransactionTypeCode_07:
          type: string
          format: X12_ID
          enum: [01, 02, 10]
`
	spec, _, err := edispec.Import([]byte(src), edispec.Options{})
	require.NoError(t, err)
	assert.Equal(t, "810", spec.Metadata.TransactionSet)
	el := spec.Loops[0].Segments[0].Elements[0]
	assert.Equal(t, 7, el.Position)
	assert.Equal(t, "Transaction Type Code", el.Name)
	assert.Equal(t, []model.CodeValue{
		{Code: "01", Included: true},
		{Code: "02", Included: true},
		{Code: "10", Included: true},
	}, el.CodeValues)
}

func TestImport_MissingTransactionSet(t *testing.T) {
	src := `{"openapi":"3.0.1","components":{"schemas":{"ST":{"x-openedi-segment-id":"ST"}}}}`
	_, _, err := edispec.Import([]byte(src), edispec.Options{})
	assert.ErrorIs(t, err, edispec.ErrMissingTransactionSet)
	assert.False(t, errors.Is(err, edispec.ErrMalformedInput))
}

func TestImport_Malformed(t *testing.T) {
	for _, src := range []string{`{"TransactionSetId":`, ``, `[1, 2]`, `"just a string"`, `{"Loops":"nope"}`} {
		_, _, err := edispec.Import([]byte(src), edispec.Options{})
		assert.ErrorIs(t, err, edispec.ErrMalformedInput, "input %q", src)
	}
}

func TestImport_Deterministic(t *testing.T) {
	a, _, err := edispec.Import([]byte(scenarioA), deterministic())
	require.NoError(t, err)
	b, _, err := edispec.Import([]byte(scenarioA), deterministic())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "id-0001", a.ID)
}

func TestImport_BaseInvariantAndUniqueIDs(t *testing.T) {
	for name, src := range map[string]string{"legacy": scenarioA, "openedi": scenarioC} {
		t.Run(name, func(t *testing.T) {
			spec, _, err := edispec.Import([]byte(src), edispec.Options{})
			require.NoError(t, err)
			ids := []string{spec.ID}
			spec.Walk(func(_ int, l *model.Loop, s *model.Segment, e *model.Element) {
				switch {
				case l != nil:
					ids = append(ids, l.ID)
					assert.Equal(t, l.Usage, l.BaseUsage)
					assert.Equal(t, l.MinUse, l.BaseMinUse)
					assert.Equal(t, l.MaxUse, l.BaseMaxUse)
				case s != nil:
					ids = append(ids, s.ID)
					assert.Equal(t, s.Usage, s.BaseUsage)
					assert.Equal(t, s.MinUse, s.BaseMinUse)
					assert.Equal(t, s.MaxUse, s.BaseMaxUse)
					for i := 1; i < len(s.Elements); i++ {
						assert.LessOrEqual(t, s.Elements[i-1].Position, s.Elements[i].Position)
					}
				case e != nil:
					ids = append(ids, e.ID)
					assert.Equal(t, e.Usage, e.BaseUsage)
					assert.Equal(t, e.CodeValues, e.BaseCodes)
				}
			})
			sort.Strings(ids)
			for i, id := range ids {
				require.NotEmpty(t, id)
				if i > 0 {
					assert.NotEqual(t, ids[i-1], id)
				}
			}
		})
	}
}

func TestImport_ConcurrentIndependentDocuments(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := scenarioA
			if i%2 == 1 {
				src = scenarioC
			}
			_, _, err := edispec.Import([]byte(src), edispec.Options{})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestImport_ModelRoundTrip(t *testing.T) {
	spec, _, err := edispec.Import([]byte(scenarioC), deterministic())
	require.NoError(t, err)

	b, err := json.Marshal(spec)
	require.NoError(t, err)
	var back model.Specification
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, spec.Metadata.CreatedDate.UnixNano(), back.Metadata.CreatedDate.UnixNano())
	back.Metadata.CreatedDate, back.Metadata.ModifiedDate = spec.Metadata.CreatedDate, spec.Metadata.ModifiedDate
	assert.Equal(t, *spec, back)

	y, err := yaml.Marshal(spec)
	require.NoError(t, err)
	var fromYAML model.Specification
	require.NoError(t, yaml.Unmarshal(y, &fromYAML))
	assert.Equal(t, spec.Loops, fromYAML.Loops)
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "810.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioC), 0o644))
	spec, _, err := edispec.ImportFile(path, edispec.Options{})
	require.NoError(t, err)
	assert.Equal(t, "810", spec.Metadata.TransactionSet)

	_, _, err = edispec.ImportFile(filepath.Join(t.TempDir(), "missing.json"), edispec.Options{})
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	f, err := edispec.DetectFormat([]byte(scenarioC))
	require.NoError(t, err)
	assert.Equal(t, edispec.FormatOpenEDI, f)

	f, err = edispec.DetectFormat([]byte(scenarioA))
	require.NoError(t, err)
	assert.Equal(t, edispec.FormatLegacy, f)
	assert.Equal(t, "legacy", f.String())

	_, err = edispec.DetectFormat([]byte(`{`))
	assert.ErrorIs(t, err, edispec.ErrMalformedInput)
}

func TestNewSpecification(t *testing.T) {
	spec := edispec.NewSpecification("123", deterministic())
	assert.Contains(t, spec.Metadata.Name, "123")
	assert.Empty(t, spec.Loops)
	assert.NotNil(t, spec.Examples)
	assert.Equal(t, model.DefaultEDIVersion, spec.Metadata.EDIVersion)
	assert.Equal(t, spec.Metadata.CreatedDate, spec.Metadata.ModifiedDate)

	known := edispec.NewSpecification("856", edispec.Options{})
	assert.Equal(t, "856 Ship Notice/Manifest", known.Metadata.Name)
	assert.Equal(t, "Ship Notice/Manifest", known.Metadata.TransactionSetName)
	assert.NotEmpty(t, known.ID)
}
