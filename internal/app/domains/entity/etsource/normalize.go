package etsource

import (
	"regexp"
	"strconv"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^0-9A-Za-z]`)

// blankishValues 视同空白的键值
// 上传数据里缺失的单号常被填成占位符，这些值之间互不构成重复。
var blankishValues = map[string]bool{
	"": true, "0": true, "-": true,
	"NA": true, "N/A": true, "NONE": true, "NULL": true, "NAN": true,
}

// NormalizeTracking 规范化单号字符串
// 电子表格导出常把长单号转成科学计数法或带小数点的数字，
// 先还原为整数字符串，再去掉非字母数字字符，不足10位左侧补零。
func NormalizeTracking(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "eE.") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			s = strconv.FormatInt(int64(f), 10)
		}
	}

	s = nonAlnumRe.ReplaceAllString(s, "")
	if s != "" && len(s) < 10 {
		s = strings.Repeat("0", 10-len(s)) + s
	}
	return s
}

// IsBlankKey 键值是否视同空白（不参与去重）
func IsBlankKey(s string) bool {
	return blankishValues[strings.ToUpper(strings.TrimSpace(s))]
}
