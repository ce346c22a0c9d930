package adapter

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_ValidSource(t *testing.T) {
	file, err := NewLocalGoFileAdapter().Parse(token.NewFileSet(), "sample.go", []byte("package sample\n\nvar X = 1\n"))
	require.NoError(t, err)
	require.Equal(t, "sample", file.Name.Name)
}

func TestParse_InvalidSourceFails(t *testing.T) {
	_, err := NewLocalGoFileAdapter().Parse(token.NewFileSet(), "broken.go", []byte("not go code"))
	require.Error(t, err)
}
