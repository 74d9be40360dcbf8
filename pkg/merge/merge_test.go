package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cfmerge/cfmerge/errors"
	"github.com/cfmerge/cfmerge/pkg/template"
)

func mustLoad(t *testing.T, path, body string) *template.Document {
	t.Helper()
	doc, err := template.Load([]byte(body), path)
	require.NoError(t, err)
	return doc
}

func sectionKeys(t *testing.T, doc *template.Document, section string) []string {
	t.Helper()
	raw, ok := doc.Root.Get(section)
	require.True(t, ok, "section %s missing", section)
	return raw.(*template.Mapping).Keys()
}

func TestMergeTemplatesUnion(t *testing.T) {
	base := mustLoad(t, "base.yaml", `
Resources:
  A:
    Type: X
`)
	f1 := mustLoad(t, "f1.yaml", `
Resources:
  Bk:
    Type: Y
`)
	f2 := mustLoad(t, "f2.yaml", `
Outputs:
  O1:
    Value: !Ref Bk
`)

	merged, err := MergeTemplates(base, []*template.Document{f1, f2})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "Bk"}, sectionKeys(t, merged, "Resources"))

	outputs, _ := merged.Root.Get("Outputs")
	o1, ok := outputs.(*template.Mapping).Get("O1")
	require.True(t, ok)
	value, _ := o1.(*template.Mapping).Get("Value")
	assert.Equal(t, &template.Tagged{Tag: "!Ref", Value: "Bk"}, value)
}

func TestMergeTemplatesDuplicateAcrossBaseAndFragment(t *testing.T) {
	base := mustLoad(t, "base.yaml", `
Resources:
  A:
    Type: X
`)
	f1 := mustLoad(t, "f1.yaml", `
Resources:
  A:
    Type: Y
`)

	merged, err := MergeTemplates(base, []*template.Document{f1})
	require.Error(t, err)
	assert.Nil(t, merged)
	assert.True(t, errUtils.Is(err, errUtils.ErrDuplicateSectionKey))
	assert.Contains(t, err.Error(), "Resources")
	assert.Contains(t, err.Error(), `"A"`)
	assert.Contains(t, err.Error(), "f1.yaml")
}

func TestMergeTemplatesDuplicateAcrossFragments(t *testing.T) {
	base := mustLoad(t, "base.yaml", `Resources: {}`)
	f1 := mustLoad(t, "f1.yaml", `
Parameters:
  Stage:
    Type: String
`)
	f2 := mustLoad(t, "f2.yaml", `
Parameters:
  Stage:
    Type: String
`)

	_, err := MergeTemplates(base, []*template.Document{f1, f2})
	require.Error(t, err)
	assert.True(t, errUtils.Is(err, errUtils.ErrDuplicateSectionKey))
	// The later-processed source is named.
	assert.Contains(t, err.Error(), "f2.yaml")
	assert.NotContains(t, err.Error(), "f1.yaml")
}

func TestMergeTemplatesSectionTypeError(t *testing.T) {
	base := mustLoad(t, "base.yaml", `Resources: {}`)
	f1 := mustLoad(t, "f1.yaml", `Parameters: not-a-mapping`)

	_, err := MergeTemplates(base, []*template.Document{f1})
	require.Error(t, err)
	assert.True(t, errUtils.Is(err, errUtils.ErrSectionNotMapping))
	assert.Contains(t, err.Error(), "Parameters")
	assert.Contains(t, err.Error(), "f1.yaml")
}

func TestMergeTemplatesBaseSectionTypeError(t *testing.T) {
	base := mustLoad(t, "base.yaml", `Outputs: [a, b]`)
	f1 := mustLoad(t, "f1.yaml", `
Outputs:
  O1:
    Value: v
`)

	_, err := MergeTemplates(base, []*template.Document{f1})
	require.Error(t, err)
	assert.True(t, errUtils.Is(err, errUtils.ErrSectionNotMapping))
	assert.Contains(t, err.Error(), "base.yaml")
}

func TestMergeTemplatesNonSectionKeysPassThrough(t *testing.T) {
	base := mustLoad(t, "base.yaml", `
AWSTemplateFormatVersion: "2010-09-09"
Description: base description
Resources: {}
`)
	f1 := mustLoad(t, "f1.yaml", `
Description: fragment description
Transform: AWS::Serverless-2016-10-31
Resources:
  A:
    Type: X
`)

	merged, err := MergeTemplates(base, []*template.Document{f1})
	require.NoError(t, err)

	desc, _ := merged.Root.Get("Description")
	assert.Equal(t, "base description", desc)
	assert.False(t, merged.Root.Has("Transform"))
	assert.Equal(t, []string{"A"}, sectionKeys(t, merged, "Resources"))
}

func TestMergeTemplatesIdentityOnEmptyFragmentList(t *testing.T) {
	base := mustLoad(t, "base.yaml", `
Description: d
Parameters:
  Stage:
    Type: String
Resources:
  A:
    Type: X
Outputs:
  O:
    Value: !GetAtt A.Arn
`)

	merged, err := MergeTemplates(base, nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(base.Root, merged.Root, cmp.AllowUnexported(template.Mapping{})))
}

func TestMergeTemplatesOrderPreservation(t *testing.T) {
	base := mustLoad(t, "base.yaml", `
Resources:
  B1:
    Type: X
  B2:
    Type: X
`)
	f1 := mustLoad(t, "f1.yaml", `
Resources:
  F1b:
    Type: X
  F1a:
    Type: X
`)
	f2 := mustLoad(t, "f2.yaml", `
Resources:
  F2a:
    Type: X
`)

	merged, err := MergeTemplates(base, []*template.Document{f1, f2})
	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "B2", "F1b", "F1a", "F2a"}, sectionKeys(t, merged, "Resources"))
}

func TestMergeTemplatesCreatesSectionAbsentFromBase(t *testing.T) {
	base := mustLoad(t, "base.yaml", `Resources: {}`)
	f1 := mustLoad(t, "f1.yaml", `
Outputs:
  O1:
    Value: v
`)

	merged, err := MergeTemplates(base, []*template.Document{f1})
	require.NoError(t, err)
	assert.Equal(t, []string{"O1"}, sectionKeys(t, merged, "Outputs"))
}

func TestMergeTemplatesDoesNotMutateInputs(t *testing.T) {
	base := mustLoad(t, "base.yaml", `
Resources:
  A:
    Type: X
`)
	f1 := mustLoad(t, "f1.yaml", `
Resources:
  B:
    Type: Y
`)

	_, err := MergeTemplates(base, []*template.Document{f1})
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, sectionKeys(t, base, "Resources"))
	assert.Equal(t, []string{"B"}, sectionKeys(t, f1, "Resources"))
}

func TestMergeTemplatesAllSectionsMerged(t *testing.T) {
	base := mustLoad(t, "base.yaml", `
Parameters:
  P1: {Type: String}
Conditions:
  C1: {Fn::Equals: [a, b]}
Resources:
  R1: {Type: X}
Outputs:
  O1: {Value: v}
`)
	f1 := mustLoad(t, "f1.yaml", `
Parameters:
  P2: {Type: String}
Conditions:
  C2: {Fn::Equals: [c, d]}
Resources:
  R2: {Type: Y}
Outputs:
  O2: {Value: w}
`)

	merged, err := MergeTemplates(base, []*template.Document{f1})
	require.NoError(t, err)

	assert.Equal(t, []string{"P1", "P2"}, sectionKeys(t, merged, "Parameters"))
	assert.Equal(t, []string{"C1", "C2"}, sectionKeys(t, merged, "Conditions"))
	assert.Equal(t, []string{"R1", "R2"}, sectionKeys(t, merged, "Resources"))
	assert.Equal(t, []string{"O1", "O2"}, sectionKeys(t, merged, "Outputs"))
}

func TestMergeSectionAbsentFromSourceIsNoop(t *testing.T) {
	base := mustLoad(t, "base.yaml", `Resources: {}`)
	f1 := mustLoad(t, "f1.yaml", `Description: nothing to merge`)

	dest := base.Root.Clone()
	err := MergeSection(dest, base.Path, f1, "Resources")
	require.NoError(t, err)

	raw, _ := dest.Get("Resources")
	assert.Equal(t, 0, raw.(*template.Mapping).Len())
}
