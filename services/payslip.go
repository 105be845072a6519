package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kimyt990501/erp-system-backend/types"
	"github.com/kimyt990501/erp-system-backend/utils"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PayslipData holds the four figures extracted from a payslip document.
type PayslipData struct {
	PayMonth   string `json:"pay_month"` // YYYY-MM
	BasePay    int    `json:"base_pay"`
	Deductions int    `json:"deductions"`
	NetPay     int    `json:"net_pay"`
}

// Payslips come from Korean payroll software that spaces out the label
// characters, so each label matches with arbitrary internal whitespace.
var (
	payMonthPattern   = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월`)
	basePayPattern    = regexp.MustCompile(`지\s*급\s*액\s*계\s+([0-9,]+)`)
	deductionsPattern = regexp.MustCompile(`공\s*제\s*액\s*계\s+([0-9,]+)`)
	netPayPattern     = regexp.MustCompile(`차\s*인\s*지\s*급\s*액\s+([0-9,]+)`)

	payMonthFormat = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// payslipAccumulator collects fields across pages; nil/empty means unmatched.
type payslipAccumulator struct {
	payMonth   string
	basePay    *int
	deductions *int
	netPay     *int
}

func (a *payslipAccumulator) complete() bool {
	return a.payMonth != "" && a.basePay != nil && a.deductions != nil && a.netPay != nil
}

// containsAll is a cheap pre-filter run before the regex: the page must
// contain every character of the label somewhere at all.
func containsAll(text string, chars ...string) bool {
	for _, ch := range chars {
		if !strings.Contains(text, ch) {
			return false
		}
	}
	return true
}

func parseAmount(raw string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
}

// ExtractPayslipText scans page texts in order and fills each field from its
// first match across pages. Scanning stops once all four fields are set.
func ExtractPayslipText(pages []string) (*PayslipData, error) {
	acc := payslipAccumulator{}

	for _, text := range pages {
		if text == "" {
			utils.Logger.Warn("Payslip page contains no extractable text")
			continue
		}

		if acc.payMonth == "" {
			if m := payMonthPattern.FindStringSubmatch(text); m != nil {
				year := m[1]
				month := m[2]
				if len(month) == 1 {
					month = "0" + month
				}
				acc.payMonth = year + "-" + month
			}
		}

		if acc.basePay == nil && containsAll(text, "지", "급", "액", "계") {
			if m := basePayPattern.FindStringSubmatch(text); m != nil {
				amount, err := parseAmount(m[1])
				if err != nil {
					return nil, errors.Wrap(err, "failed to parse base pay amount")
				}
				acc.basePay = &amount
			}
		}

		if acc.deductions == nil && containsAll(text, "공", "제", "액", "계") {
			if m := deductionsPattern.FindStringSubmatch(text); m != nil {
				amount, err := parseAmount(m[1])
				if err != nil {
					return nil, errors.Wrap(err, "failed to parse deductions amount")
				}
				acc.deductions = &amount
			}
		}

		if acc.netPay == nil && containsAll(text, "차", "인", "지", "급", "액") {
			if m := netPayPattern.FindStringSubmatch(text); m != nil {
				amount, err := parseAmount(m[1])
				if err != nil {
					return nil, errors.Wrap(err, "failed to parse net pay amount")
				}
				acc.netPay = &amount
			}
		}

		if acc.complete() {
			break
		}
	}

	if acc.payMonth == "" {
		return nil, &types.MissingFieldError{Field: "pay_month"}
	}
	if acc.basePay == nil {
		return nil, &types.MissingFieldError{Field: "base_pay"}
	}
	if acc.deductions == nil {
		return nil, &types.MissingFieldError{Field: "deductions"}
	}
	if acc.netPay == nil {
		return nil, &types.MissingFieldError{Field: "net_pay"}
	}

	return &PayslipData{
		PayMonth:   acc.payMonth,
		BasePay:    *acc.basePay,
		Deductions: *acc.deductions,
		NetPay:     *acc.netPay,
	}, nil
}

// ValidatePayslipData checks the extracted figures. A base - deductions
// mismatch against net pay only logs a warning, since source documents
// occasionally round. Negative amounts and a malformed period fail.
func ValidatePayslipData(data *PayslipData) error {
	calculatedNet := data.BasePay - data.Deductions
	if calculatedNet != data.NetPay {
		utils.Logger.Warn("Payslip figures do not add up",
			zap.Int("base_pay", data.BasePay),
			zap.Int("deductions", data.Deductions),
			zap.Int("calculated_net", calculatedNet),
			zap.Int("net_pay", data.NetPay),
		)
	}

	if data.BasePay < 0 || data.Deductions < 0 || data.NetPay < 0 {
		return types.ErrNegativeAmount
	}

	if !payMonthFormat.MatchString(data.PayMonth) {
		return types.ErrMalformedPeriod
	}

	return nil
}

// ExtractPayslipFile reads the text layer of a PDF on disk page by page and
// runs the text extraction over it.
func ExtractPayslipFile(path string) (*PayslipData, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF")
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			utils.Logger.Warn("Failed to read PDF page text", zap.Int("page", i), zap.Error(err))
			continue
		}
		pages = append(pages, text)
	}

	return ExtractPayslipText(pages)
}
