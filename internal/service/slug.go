package service

import (
	"regexp"
	"strings"
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 将标题转为 URL 友好的 slug：
// 小写、非字母数字折叠为连字符、去掉首尾连字符。
func Slugify(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = slugInvalidChars.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}
