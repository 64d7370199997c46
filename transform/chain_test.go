package transform

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChain_Empty(t *testing.T) {
	c := NewEmpty()

	var out bytes.Buffer
	require.NoError(t, c.Apply(&out, strings.NewReader("unchanged")))
	require.Equal(t, "unchanged", out.String())
}

func TestChain_AppliesInOrder(t *testing.T) {
	replace := func(old, new string) Transformer {
		return func(ft FromTo) error {
			s := strings.ReplaceAll(string(ft.From().Bytes()), old, new)
			_, err := ft.To().Write([]byte(s))
			return err
		}
	}

	c := New(replace("a", "b"), replace("b", "c"))

	var out bytes.Buffer
	require.NoError(t, c.Apply(&out, strings.NewReader("aba")))
	require.Equal(t, "ccc", out.String())
}
