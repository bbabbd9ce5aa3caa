package slug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	got := Make("Deploy a Secure S3 Bucket!!", 60)
	require.Equal(t, "deploy-a-secure-s3-bucket", got)
	require.False(t, strings.HasPrefix(got, "-"))
	require.False(t, strings.HasSuffix(got, "-"))
	require.NotContains(t, got, "--")

	require.Equal(t, Fallback, Make("!!!", 60))
	require.Equal(t, Fallback, Make("", 60))

	long := Make(strings.Repeat("word ", 40), 60)
	require.LessOrEqual(t, len(long), 60)
}

func TestFromSpecUsesHeadWords(t *testing.T) {
	spec := "Deploy a secure S3 bucket with versioning enabled plus lots of extra words that should be ignored"
	require.Equal(t, "deploy-a-secure-s3-bucket-with-versioning-enabled", FromSpec(spec))
}

func TestAllocateDeconflicts(t *testing.T) {
	base := t.TempDir()

	got := Allocate(base, "my app")
	require.Equal(t, filepath.Join(base, "my-app"), got)

	require.NoError(t, os.Mkdir(filepath.Join(base, "my-app"), 0o755))
	got = Allocate(base, "my app")
	require.Equal(t, filepath.Join(base, "my-app-2"), got)

	require.NoError(t, os.Mkdir(filepath.Join(base, "my-app-2"), 0o755))
	got = Allocate(base, "my app")
	require.Equal(t, filepath.Join(base, "my-app-3"), got)
}
