package notifier

import (
	"fmt"
	"html"
	"strings"

	"PaperTrader/internal/calculator"
	"PaperTrader/internal/model"
	"PaperTrader/internal/portfolio"
	"PaperTrader/internal/series"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter renders reports as chat or terminal text.
type Formatter struct {
	Currency string
	HTML     bool // Telegram HTML parse mode
}

// Money formats d in the configured currency, e.g. "$1,050,000.00".
func (f Formatter) Money(d decimal.Decimal) string {
	cur := money.GetCurrency(f.Currency)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// SignedMoney is Money with an explicit "+" for gains.
func (f Formatter) SignedMoney(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + f.Money(d)
	}
	return f.Money(d)
}

func (f Formatter) bold(s string) string {
	if f.HTML {
		return "<b>" + html.EscapeString(s) + "</b>"
	}
	return s
}

func (f Formatter) text(s string) string {
	if f.HTML {
		return html.EscapeString(s)
	}
	return s
}

func pct(d decimal.Decimal, ok bool, places int32) string {
	if !ok {
		return "n/a"
	}
	return d.StringFixed(places) + "%"
}

// FormatPortfolio renders the account summary and holdings table.
func (f Formatter) FormatPortfolio(acct *model.Account, initialInvestment decimal.Decimal) string {
	var b strings.Builder

	b.WriteString("📊 " + f.bold("Account Summary") + "\n\n")
	b.WriteString(fmt.Sprintf("Total Value: %s\n", f.Money(acct.TotalValue)))
	b.WriteString(fmt.Sprintf("Cash Balance: %s\n", f.Money(acct.CashBalance)))
	gain := portfolio.TotalGainLoss(acct, initialInvestment)
	gainPct, ok := portfolio.TotalGainLossPct(acct, initialInvestment)
	b.WriteString(fmt.Sprintf("Total Gain/Loss: %s (%s)\n\n", f.SignedMoney(gain), pct(gainPct, ok, 4)))

	b.WriteString("📈 " + f.bold("Holdings") + "\n")
	if len(acct.Holdings) == 0 {
		b.WriteString("No holdings yet\n")
		return b.String()
	}
	for _, p := range acct.Holdings {
		posPct, ok := portfolio.PositionGainLossPct(p)
		b.WriteString(fmt.Sprintf("%s  %d @ %s → %s | value %s | %s (%s)\n",
			f.bold(p.Symbol), p.Shares, f.Money(p.AvgPrice), f.Money(p.CurrentPrice),
			f.Money(p.Value), f.SignedMoney(p.GainLoss), pct(posPct, ok, 2)))
	}
	return b.String()
}

// FormatTradeConfirmation renders an executed fill.
func (f Formatter) FormatTradeConfirmation(c *model.TradeConfirmation) string {
	return fmt.Sprintf("✅ %s\n%s: %d shares of %s at %s",
		f.bold("Trade executed successfully!"),
		strings.ToUpper(string(c.Action)), c.Shares, f.text(c.Symbol), f.Money(c.Price))
}

// FormatSeries renders the chart caption of s. sum may be nil. A nil s is
// the idle state with no symbol selected.
func (f Formatter) FormatSeries(s *model.Series, sum *calculator.Summary) string {
	if s == nil {
		return "No symbol selected\n"
	}
	var b strings.Builder

	b.WriteString("📉 " + f.bold(s.Name()) + "\n")
	if price, ok := s.DisplayPrice(); ok {
		b.WriteString(fmt.Sprintf("Current Price: %s\n", f.Money(price)))
	} else {
		b.WriteString("Current Price: N/A\n")
	}
	b.WriteString(fmt.Sprintf("Period: %s (range %s, interval %s), %d points\n", s.Period, s.Range, s.Interval, s.Len()))
	if s.Len() > 0 {
		b.WriteString(fmt.Sprintf("From %s to %s\n", f.text(s.Dates[0]), f.text(s.Dates[s.Len()-1])))
	}
	if sum == nil {
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Change: %s (%s%%)\n", f.SignedMoney(sum.Change), sum.ChangePct.StringFixed(2)))
	b.WriteString(fmt.Sprintf("High: %s | Low: %s | Position: %.0f%%\n", f.Money(sum.High), f.Money(sum.Low), sum.Position*100))
	if sum.HasSMA {
		b.WriteString(fmt.Sprintf("SMA20: %.2f | ", sum.SMA))
	}
	b.WriteString(fmt.Sprintf("RSI14: %.0f\n", sum.RSI))
	return b.String()
}

// FormatError renders the user-facing message for err.
func (f Formatter) FormatError(err error) string {
	return "❌ " + f.text(model.UserMessage(err))
}

// FormatHelp lists the bot commands.
func (f Formatter) FormatHelp() string {
	return "Available commands:\n" +
		"• /portfolio - refresh and show holdings\n" +
		"• /buy SYMBOL SHARES\n" +
		"• /sell SYMBOL SHARES\n" +
		"• /chart SYMBOL [PERIOD]\n" +
		"• /period PERIOD\n" +
		"Periods: " + strings.Join(series.Labels, ", ")
}
