// Package diff 生成与应用笔记修订之间的文本补丁
package diff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Stats 一次修订中插入与删除的字符数
type Stats struct {
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// MakePatch 生成从 prev 到 next 的补丁文本
func MakePatch(prev, next string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(prev, next, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.PatchToText(dmp.PatchMake(prev, diffs))
}

// ApplyPatch 将补丁应用到 text，任一片段失败时 ok 为 false
func ApplyPatch(text, patch string) (result string, ok bool, err error) {
	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patch)
	if err != nil {
		return "", false, err
	}
	result, applied := dmp.PatchApply(patches, text)
	for _, a := range applied {
		if !a {
			return result, false, nil
		}
	}
	return result, true, nil
}

// Summarize 统计 prev 到 next 的插入与删除字符数
func Summarize(prev, next string) Stats {
	dmp := diffmatchpatch.New()
	var s Stats
	for _, d := range dmp.DiffMain(prev, next, false) {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Inserted += n
		case diffmatchpatch.DiffDelete:
			s.Deleted += n
		}
	}
	return s
}
