package fileurl

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsContainExt(t *testing.T) {
	allow := []string{"wav", "mp3", "m4a"}

	assert.True(t, IsContainExt("clip.WAV", allow))
	assert.True(t, IsContainExt("voice.m4a", allow))
	assert.False(t, IsContainExt("voice.ogg", allow))
	assert.False(t, IsContainExt("noext", allow))
}

func TestRandomFileName(t *testing.T) {
	name := RandomFileName(".wav")
	assert.True(t, strings.HasSuffix(name, ".wav"))
	assert.Len(t, strings.TrimSuffix(name, ".wav"), 36)
}

func TestSafeJoin(t *testing.T) {
	p, ok := SafeJoin("/data/audio", "a.wav")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("/data/audio", "a.wav"), p)

	for _, bad := range []string{"", "..", "../etc/passwd", `a\b.wav`, "sub/a.wav"} {
		_, ok := SafeJoin("/data/audio", bad)
		assert.False(t, ok, bad)
	}
}

func TestCreatePathAndIsExist(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "file.wav")

	assert.NoError(t, CreatePath(target, 0o755))
	assert.True(t, IsDir(filepath.Join(dir, "a", "b")))
	assert.True(t, IsExist(filepath.Join(dir, "a")))
	assert.False(t, IsExist(target))
}

func TestGetDatePath(t *testing.T) {
	p := GetDatePath("")
	assert.Regexp(t, `^\d{6}/\d{2}/$`, p)
	assert.Equal(t, "x/", PathSuffixCheckAdd("x", "/"))
	assert.Equal(t, "x/", PathSuffixCheckAdd("x/", "/"))
}
