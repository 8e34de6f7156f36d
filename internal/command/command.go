// Package command 把一句英文文本解析为笔记操作指令
package command

import (
	"strconv"
	"strings"
)

// Action 指令类型
type Action string

const (
	ActionCreate  Action = "CREATE"
	ActionUpdate  Action = "UPDATE"
	ActionDelete  Action = "DELETE"
	ActionSearch  Action = "SEARCH"
	ActionUnknown Action = "UNKNOWN"
)

// ParsedCommand 解析结果，NoteID 为 nil 表示没有找到编号
type ParsedCommand struct {
	Action  Action `json:"action"`
	NoteID  *int64 `json:"note_id,omitempty"`
	Content string `json:"content,omitempty"`
	Keyword string `json:"keyword,omitempty"`
}

// rule 按顺序匹配的关键词规则
type rule struct {
	action   Action
	triggers []string
}

// 顺序即优先级，先命中的规则生效
var rules = []rule{
	{ActionCreate, []string{"create", "new note", "make note"}},
	{ActionUpdate, []string{"update", "edit note"}},
	{ActionDelete, []string{"delete", "remove note"}},
	{ActionSearch, []string{"search", "find"}},
}

// Parse 解析指令文本，纯函数
func Parse(text string) ParsedCommand {
	lower := strings.ToLower(text)

	for _, r := range rules {
		if !containsAny(lower, r.triggers) {
			continue
		}
		switch r.action {
		case ActionCreate:
			content := lower
			for _, t := range r.triggers {
				content = strings.ReplaceAll(content, t, "")
			}
			return ParsedCommand{Action: ActionCreate, Content: strings.TrimSpace(content)}
		case ActionUpdate:
			return ParsedCommand{
				Action:  ActionUpdate,
				NoteID:  extractID(lower),
				Content: after(lower, r.triggers),
			}
		case ActionDelete:
			return ParsedCommand{Action: ActionDelete, NoteID: extractID(lower)}
		case ActionSearch:
			return ParsedCommand{Action: ActionSearch, Keyword: after(lower, r.triggers)}
		}
	}

	// 没有命中任何规则时把原文当作新笔记
	return ParsedCommand{Action: ActionCreate, Content: text}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// after 返回最先出现的触发词之后的文本
func after(s string, triggers []string) string {
	pos, size := -1, 0
	for _, t := range triggers {
		if i := strings.Index(s, t); i >= 0 && (pos < 0 || i < pos) {
			pos, size = i, len(t)
		}
	}
	if pos < 0 {
		return ""
	}
	return strings.TrimSpace(s[pos+size:])
}

// extractID 第一个全部由 ASCII 数字组成且不溢出 int64 的空白分隔词
func extractID(s string) *int64 {
	for _, tok := range strings.Fields(s) {
		if !isDigits(tok) {
			continue
		}
		if id, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return &id
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ID 返回编号，没有时为 0
func (c ParsedCommand) ID() int64 {
	if c.NoteID == nil {
		return 0
	}
	return *c.NoteID
}

// HasID 是否带有编号
func (c ParsedCommand) HasID() bool {
	return c.NoteID != nil
}
