package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleCN = "zh-CN"
	LocaleEN = "en-US"

	// DefaultLocale 未识别语言时的回退
	DefaultLocale = LocaleEN
)

var (
	supportedTags = []language.Tag{language.AmericanEnglish, language.SimplifiedChinese}
	matcher       = language.NewMatcher(supportedTags)
)

// ResolveLocale 从请求中解析语言，优先 ?lang= 其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	return NormalizeLocale(c.GetHeader("Accept-Language"))
}

// NormalizeLocale 将任意语言标记归一为受支持的 locale
func NormalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	if supportedTags[index] == language.SimplifiedChinese {
		return LocaleCN
	}
	return LocaleEN
}

// T 翻译消息 key，缺失时回退英文，再回退 key 本身
func T(locale, key string) string {
	if msgs, ok := catalogs[NormalizeLocale(locale)]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后按参数格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
