package gitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/pkg/mod.py b/pkg/mod.py
index 1111111..2222222 100644
--- a/pkg/mod.py
+++ b/pkg/mod.py
@@ -10,0 +11,2 @@ def f():
+    x = 1
+    y = 2
@@ -20 +23 @@ def g():
-    return None
+    return 0
diff --git a/README.md b/README.md
index 3333333..4444444 100644
--- a/README.md
+++ b/README.md
@@ -1 +1 @@
-old
+new
`

func TestParseDiff(t *testing.T) {
	changes, err := parseDiff([]byte(sampleDiff))
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, "pkg/mod.py", changes[0].Path)
	assert.Equal(t, []int{11, 12, 23}, changes[0].ChangedLines)

	assert.Equal(t, "README.md", changes[1].Path)
	assert.Equal(t, []int{1}, changes[1].ChangedLines)
}

func TestParseDiffEmpty(t *testing.T) {
	changes, err := parseDiff(nil)
	require.NoError(t, err)
	assert.Empty(t, changes)
}
