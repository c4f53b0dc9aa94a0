package application

import (
	"regexp"
	"strings"
)

// dimensionPattern 轴承型号中的尺寸段，内径x外径x宽度，如 25x52x15
var dimensionPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)x(\d+(?:\.\d+)?)x(\d+(?:\.\d+)?)`)

const specsPlaceholder = "N/A"

// SpecsFromPartNumber 从型号字符串合成规格串 model|内径|外径
// 无法识别尺寸段时相应字段以 N/A 占位
func SpecsFromPartNumber(partNumber string) string {
	model := specsPlaceholder
	inner := specsPlaceholder
	outer := specsPlaceholder

	loc := dimensionPattern.FindStringSubmatchIndex(partNumber)
	if loc != nil {
		if prefix := strings.Trim(partNumber[:loc[0]], "- "); prefix != "" {
			model = prefix
		}
		inner = partNumber[loc[2]:loc[3]]
		outer = partNumber[loc[4]:loc[5]]
	} else if trimmed := strings.TrimSpace(partNumber); trimmed != "" {
		model = trimmed
	}

	return model + "|" + inner + "|" + outer
}
