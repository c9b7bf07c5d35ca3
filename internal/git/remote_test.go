package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRemoteRefs(t *testing.T) {
	t.Run("single pair without newline", func(t *testing.T) {
		pairs, err := ParseRemoteRefs("d4ae7077d4ed711a10e89908ab91999ce326dfc0\trefs/heads/approvals_template")
		require.NoError(t, err)
		require.Equal(t, []RemoteRefPair{{
			RefName: "d4ae7077d4ed711a10e89908ab91999ce326dfc0",
			Path:    "refs/heads/approvals_template",
		}}, pairs)
	})

	t.Run("listing", func(t *testing.T) {
		pairs, err := ParseRemoteRefs(readTestdata(t, "ls-remote.txt"))
		require.NoError(t, err)
		require.Len(t, pairs, 4)
		require.Equal(t, "refs/tags/v1.2.0^{}", pairs[3].Path)
		require.Equal(t, ObjectName("8558b6934276f1b9966c01f7b3e5aeea2902742d"), pairs[3].RefName)
	})

	t.Run("empty", func(t *testing.T) {
		pairs, err := ParseRemoteRefs("")
		require.NoError(t, err)
		require.Empty(t, pairs)
	})

	t.Run("rejects", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
			kind  ParseErrorKind
		}{
			{"space separator", "d4ae7077d4ed711a10e89908ab91999ce326dfc0 refs/heads/main\n", RuleFailed},
			{"missing path", "d4ae7077d4ed711a10e89908ab91999ce326dfc0\t\n", Underrun},
			{"short id", "d4ae7077\trefs/heads/main\n", RuleFailed},
			{"header line", "From git@example.com:repo.git\n", RuleFailed},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				pairs, err := ParseRemoteRefs(tt.input)
				requireParseError(t, err, tt.kind)
				require.Nil(t, pairs)
			})
		}
	})
}
