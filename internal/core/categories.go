package core

// StartingCapital is the company's fixed paid-in capital.
const StartingCapital = 500000

// Canonical rate table. Earlier bookkeeping iterations used an 8%
// retained-surplus rate; 30% is the rate in force.
const (
	// TaxRatePercent is withheld from general income gross.
	TaxRatePercent = 5
	// SurplusRatePercent of income gross is retained as company equity.
	SurplusRatePercent = 30
	// SplitRatePercent of monthly net profit stays with the company at
	// settlement; the remainder is paid out to the daily ledger.
	SplitRatePercent = 30
	// TransferFee is charged on income received via a non-primary bank
	// transfer, deducted from the retained surplus.
	TransferFee = 15
)

const (
	// CategoryKOLIncome marks KOL marketing income, which uses the
	// inverse-tax formula and a pass-through wage.
	CategoryKOLIncome = "KOL行銷費"
	// CategoryPayout marks daily rows generated by a settlement.
	CategoryPayout = "公司匯入"
	// CategorySettlement is the category on company settlement rows.
	CategorySettlement = "結算"
	// CategoryOther lets the user supply a free-text item name.
	CategoryOther = "其他"
)

var IncomeCategories = []string{"冠智薪資", "KOL行銷費", "發票費", "其他"}

var ExpenseCategories = []string{"冠智生活費", "毓萱生活費", "會計費", "稅金", "其他"}

var DailyCategories = []string{
	"房租", "水費", "電費", "網路費", "機車保險", "機車保養",
	"汽車停車位", "汽車保養", "汽車保險", "汽車牌照稅", "汽車燃料稅",
	"個人保險費", "生活用品費", "餐費", "貓咪費用", "保養費", "其他",
}

// FixedExpenseLabels are the monthly fixed-expense template entries
// offered by the batch entry form.
var FixedExpenseLabels = []string{
	"房租", "水費", "電費", "網路費", "管理費", "機車保險", "汽車保險", "個人保險",
}

// ValidCategory reports whether name is one of the allowed values.
func ValidCategory(name string, allowed []string) bool {
	for _, c := range allowed {
		if c == name {
			return true
		}
	}
	return false
}
