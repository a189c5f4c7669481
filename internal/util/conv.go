package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNotInteger = errors.New("not an integer")

// ErrIntOverflow 文本是合法整数但超出 int 范围
var ErrIntOverflow = errors.New("integer out of range")

// ParseID 解析路径中的正整数 ID
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || id == 0 {
		return 0, errNotInteger
	}
	return uint(id), nil
}

// ParseInt 解析十进制整数文本，允许首尾空白和正负号；"150.0"、"1e3" 之类不是整数。
// 数字过大时返回 ErrIntOverflow
func ParseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrIntOverflow
		}
		return 0, errNotInteger
	}
	return n, nil
}

// RawText 取出 JSON 值的文本：字符串去引号，其余原样返回；字段缺失或为 null 时返回 nil。
// 小数部分为零的 JSON 数字（45.0、1e20）展开成整数文本
func RawText(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s
		}
	}
	text := string(raw)
	if isJSONNumber(raw) {
		text = integralText(text)
	}
	return &text
}

func isJSONNumber(raw []byte) bool {
	return raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')
}

// integralText 把整数值的浮点写法转成十进制整数，其余原样返回
func integralText(text string) string {
	if !strings.ContainsAny(text, ".eE") {
		return text
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return text
	}
	return strconv.FormatFloat(f, 'f', 0, 64)
}
