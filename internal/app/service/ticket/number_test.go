package ticket

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNumberFunc_FormatAndRanges(t *testing.T) {
	gen := NewNumberFunc("WAO")
	re := regexp.MustCompile(`^WAO-(\d{6})-(\d{2})$`)

	for i := 0; i < 1000; i++ {
		n := gen()
		m := re.FindStringSubmatch(n)
		require.NotNil(t, m, "unexpected ticket number %q", n)

		six, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		require.GreaterOrEqual(t, six, 100000)
		require.LessOrEqual(t, six, 999999)

		two, err := strconv.Atoi(m[2])
		require.NoError(t, err)
		require.GreaterOrEqual(t, two, 10)
		require.LessOrEqual(t, two, 99)
	}
}

func TestNewNumberFunc_UsesPrefix(t *testing.T) {
	gen := NewNumberFunc("GALA")
	require.True(t, strings.HasPrefix(gen(), "GALA-"))
}
