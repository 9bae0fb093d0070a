package signature

import (
	"testing"

	"github.com/cottand/genrew/rewriting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypePath(t *testing.T) {
	testCases := []struct {
		input    string
		expected TypePath
		wantErr  bool
	}{{
		input:    "T",
		expected: TypePath{Param: "T"},
	}, {
		input: "T.Element",
		expected: TypePath{Param: "T", Labels: []Label{
			{Name: "Element"},
		}},
	}, {
		input: "T.Element.Index",
		expected: TypePath{Param: "T", Labels: []Label{
			{Name: "Element"},
			{Name: "Index"},
		}},
	}, {
		input: "T.P:Element.Index",
		expected: TypePath{Param: "T", Labels: []Label{
			{Protocol: "P", Name: "Element"},
			{Name: "Index"},
		}},
	}, {
		input:   "",
		wantErr: true,
	}, {
		input:   "T..Element",
		wantErr: true,
	}, {
		input:   "T.:Element",
		wantErr: true,
	}, {
		input:   "T.P:",
		wantErr: true,
	}}
	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			path, err := ParseTypePath(testCase.input)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, path)
			assert.Equal(t, testCase.input, path.String())
		})
	}
}

func TestParseLayout(t *testing.T) {
	testCases := []struct {
		input    string
		expected rewriting.Layout
		wantErr  bool
	}{
		{input: "AnyObject", expected: rewriting.Layout{Kind: rewriting.LayoutAnyObject}},
		{input: "Class", expected: rewriting.Layout{Kind: rewriting.LayoutClass}},
		{input: "NativeClass", expected: rewriting.Layout{Kind: rewriting.LayoutNativeClass}},
		{input: "Trivial", expected: rewriting.Layout{Kind: rewriting.LayoutTrivial}},
		{input: "Trivial(64)", expected: rewriting.Layout{Kind: rewriting.LayoutTrivialOfExactSize, Size: 64}},
		{input: "TrivialAtMost(32)", expected: rewriting.Layout{Kind: rewriting.LayoutTrivialOfAtMostSize, Size: 32}},
		{input: "Opaque", wantErr: true},
		{input: "AnyObject(8)", wantErr: true},
		{input: "Trivial(0)", wantErr: true},
		{input: "Trivial(", wantErr: true},
		{input: "Trivial(sixty)", wantErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			layout, err := ParseLayout(testCase.input)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, layout)
		})
	}
}
