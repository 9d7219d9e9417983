package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerealean/wabbc/pkg/config"
)

func TestNewPipeline_ResolvedOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dialect config.Dialect
		want    []string
	}{
		{
			dialect: config.DialectGeneric,
			want: []string{
				NameHeader, NameEmphasis, NameImage, NameLink, NameCode,
				NameChecklist, NameList, NameQuote, NameStrikethrough,
			},
		},
		{
			dialect: config.DialectExtended,
			want: []string{
				NameHeader, NameHorizontalRule, NameEmphasis, NameImage, NameLink, NameCode,
				NameChecklist, NameList, NameQuote, NameStrikethrough, NameTable,
				NameSuperscript, NameSubscript, NameUnderline, NameDice, NameLineBreak,
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			t.Parallel()

			p, err := NewPipeline(tt.dialect, Options{})
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, p.Names()); diff != "" {
				t.Errorf("resolved order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewRegistry_DeclarationOrder(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(config.DialectGeneric, Options{})
	require.NoError(t, err)

	want := []string{
		NameHeader, NameEmphasis, NameImage, NameLink, NameCode,
		NameList, NameQuote, NameStrikethrough, NameChecklist,
	}
	if diff := cmp.Diff(want, reg.Names()); diff != "" {
		t.Errorf("declaration order mismatch (-want +got):\n%s", diff)
	}

	ext, err := NewRegistry(config.DialectExtended, Options{})
	require.NoError(t, err)
	assert.Equal(t, 16, ext.Len())
}

func TestNewRegistry_UnknownDialect(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(config.Dialect("phpbb"), Options{})
	require.ErrorIs(t, err, config.ErrUnknownDialect)

	_, err = NewPipeline(config.Dialect("phpbb"), Options{})
	require.ErrorIs(t, err, config.ErrUnknownDialect)
}

func TestGeneric_OmitsExtendedRules(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(config.DialectGeneric, Options{})
	require.NoError(t, err)

	for _, name := range []string{NameTable, NameHorizontalRule, NameSuperscript, NameSubscript, NameUnderline, NameDice, NameLineBreak} {
		_, ok := reg.Get(name)
		assert.False(t, ok, name)
	}
}

func TestPipeline_Interactions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dialect config.Dialect
		input   string
		want    string
	}{
		{
			name:    "image before link",
			dialect: config.DialectGeneric,
			input:   "![image](img.jpg) and [link](url)",
			want:    "[img]img.jpg[/img] and [url=url]link[/url]",
		},
		{
			name:    "hr before emphasis",
			dialect: config.DialectExtended,
			input:   "a\n\n***\n\nb",
			want:    "a\n\n[hr]\n\nb",
		},
		{
			name:    "checklist survives list",
			dialect: config.DialectGeneric,
			input:   "- [x] done",
			want:    "- [X] done",
		},
		{
			name:    "inline code not protected from emphasis",
			dialect: config.DialectGeneric,
			input:   "`a*b*c`",
			want:    "[code]a[i]b[/i]c[/code]",
		},
		{
			name:    "generic keeps dice and html",
			dialect: config.DialectGeneric,
			input:   "3d6 <sup>2</sup>",
			want:    "3d6 <sup>2</sup>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewPipeline(tt.dialect, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Apply(tt.input, tt.dialect))
		})
	}
}
