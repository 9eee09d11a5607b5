package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var TraditionalChinese = language.MustParse("zh-TW")

const (
	msgLoaded   = "Loaded worksheet '%v' (%d records)"
	msgColumns  = "'%v' columns: [%v]"
	msgPreview  = "Preview:"
	msgModified = "Workbook '%v' last modified %v"
	msgError    = "Error: %v"

	// Budget is the success line for the budget worksheets
	Budget = "Google Sheet budget data loaded successfully"

	// PnL is the success line for the TSMC_PnL worksheets
	PnL = "TSMC_PnL data loaded successfully"

	// Loaded is the success line for an arbitrary set of worksheets
	Loaded = "Google Sheet data loaded successfully"
)

var translations = map[string]string{
	msgLoaded:   "成功讀取 '%v' 工作表，共 %d 筆資料",
	msgColumns:  "'%v' 工作表欄位: [%v]",
	msgPreview:  "資料預覽:",
	msgModified: "工作簿 '%v' 最後修改時間 %v",
	msgError:    "發生錯誤：%v",
	Budget:      "Google Sheet 預算資料讀取成功！",
	PnL:         "TSMC_PnL 資料讀取成功！",
	Loaded:      "Google Sheet 資料讀取成功！",
}

func init() {
	for key, translation := range translations {
		message.SetString(language.English, key, key)
		message.SetString(TraditionalChinese, key, translation)
	}
}

// NewPrinter returns a message printer for one of the supported languages ('en' or 'zh-TW').
func NewPrinter(lang string) (*message.Printer, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid language '%v' (%v)", lang, err)
	}

	matcher := language.NewMatcher([]language.Tag{language.English, TraditionalChinese})
	if _, _, confidence := matcher.Match(tag); confidence == language.No {
		return nil, fmt.Errorf("unsupported language '%v'", lang)
	}

	if base, _ := tag.Base(); base.String() == "zh" {
		return message.NewPrinter(TraditionalChinese), nil
	}

	return message.NewPrinter(language.English), nil
}
