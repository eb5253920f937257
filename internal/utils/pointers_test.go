package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-quiz-server/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	require.Equal(t, "", utils.Value[string](nil))
	require.Nil(t, utils.Value[[]string](nil))
	require.Equal(t, 3, utils.Value(utils.Ptr(3)))
}

func TestPtrCopies(t *testing.T) {
	v := 1
	p := utils.Ptr(v)
	v = 2
	require.Equal(t, 1, *p)
}
