package wealthsimple

import (
	"fmt"
	"maps"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Lookups exposes the remote lookups some activity rules need. *Client
// implements it; tests substitute fakes. All methods are synchronous and
// fail with the package's error taxonomy.
type Lookups interface {
	GetAccounts(openOnly, useCache bool) ([]Account, error)
	SecurityIDToSymbol(securityID string) (string, error)
	GetCorporateActionChildActivities(canonicalID string) ([]Activity, error)
	GetSecurityMarketData(securityID string) (Security, error)
	GetETFDetails(fundingID string) (Transfer, error)
	GetTransferDetails(transferID string) (Transfer, error)
}

// activityRule is one entry of the ordered classification table: the first
// rule whose match returns true labels the activity, and no further rule is
// evaluated.
type activityRule struct {
	match func(act Activity) bool
	apply func(act Activity, lk Lookups) error
}

// DescribeActivity returns a copy of the activity augmented with the
// computed "description" field (and, for subdivisions, a back-filled
// "currency"); all other fields are preserved unchanged.
//
// The description defaults to "{type}: {subType}", then the ordered rule
// table below is evaluated top to bottom and the first matching rule
// applies. The order is semantically significant: rules are not mutually
// exclusive by field alone, and a later, more specific rule may deliberately
// be shadowed by an earlier broader one.
//
// A failing symbol resolution is absorbed (the description falls back to a
// bracketed security id); any other lookup failure aborts the
// classification of this activity.
func DescribeActivity(act Activity, lk Lookups) (Activity, error) {
	out := maps.Clone(act)
	out["description"] = fmt.Sprintf("%s: %s", str(act, "type"), str(act, "subType"))

	for _, rule := range activityRules {
		if rule.match(out) {
			if err := rule.apply(out, lk); err != nil {
				return nil, err
			}
			break
		}
	}
	return out, nil
}

var activityRules = []activityRule{
	// Internal transfer or asset movement between Wealthsimple accounts.
	{
		match: func(act Activity) bool {
			return str(act, "type") == "INTERNAL_TRANSFER" || str(act, "type") == "ASSET_MOVEMENT"
		},
		apply: func(act Activity, lk Lookups) error {
			accounts, err := lk.GetAccounts(false, true)
			if err != nil {
				return err
			}
			opposing := str(act, "opposingAccountId")
			label := opposing
			for _, account := range accounts {
				if str(account, "id") == opposing {
					label = fmt.Sprintf("%s (%s)", str(account, "description"), str(account, "number"))
				}
			}
			direction := "from"
			if str(act, "subType") == "SOURCE" {
				direction = "to"
			}
			act["description"] = fmt.Sprintf("Money transfer: %s Wealthsimple %s", direction, label)
			return nil
		},
	},
	// DIY or managed buy/sell.
	{
		match: func(act Activity) bool {
			switch str(act, "type") {
			case "DIY_BUY", "DIY_SELL", "MANAGED_BUY", "MANAGED_SELL":
				return true
			}
			return false
		},
		apply: func(act Activity, lk Lookups) error {
			verb := capitalize(strings.ReplaceAll(str(act, "subType"), "_", " "))
			if strings.Contains(str(act, "type"), "MANAGED") {
				verb = "Managed transaction"
			}
			action := "sell"
			if str(act, "type") == "DIY_BUY" || str(act, "type") == "MANAGED_BUY" {
				action = "buy"
			}
			security := symbolOrPlaceholder(lk, str(act, "securityId"))

			quantity, ok := toDecimal(act["assetQuantity"])
			if !ok || quantity.IsZero() {
				act["description"] = fmt.Sprintf("%s: %s TBD", verb, action)
				return nil
			}
			amount, _ := toDecimal(act["amount"])
			price := amount.Div(quantity)
			act["description"] = fmt.Sprintf("%s: %s %s x %s @ %s", verb, action, quantity, security, price)
			return nil
		},
	},
	// Corporate action subdivision (stock split).
	{
		match: func(act Activity) bool {
			return str(act, "type") == "CORPORATE_ACTION" && str(act, "subType") == "SUBDIVISION"
		},
		apply: describeSubdivision,
	},
	// Deposit or withdrawal by Interac e-transfer.
	{
		match: func(act Activity) bool {
			if str(act, "type") != "DEPOSIT" && str(act, "type") != "WITHDRAWAL" {
				return false
			}
			return str(act, "subType") == "E_TRANSFER" || str(act, "subType") == "E_TRANSFER_FUNDING"
		},
		apply: func(act Activity, lk Lookups) error {
			direction := "to"
			if str(act, "type") == "DEPOSIT" {
				direction = "from"
			}
			act["description"] = fmt.Sprintf("Deposit: Interac e-transfer %s %s %s",
				direction, str(act, "eTransferName"), str(act, "eTransferEmail"))
			return nil
		},
	},
	// Deposit funded by payment card.
	{
		match: func(act Activity) bool {
			return str(act, "type") == "DEPOSIT" && str(act, "subType") == "PAYMENT_CARD_TRANSACTION"
		},
		apply: func(act Activity, lk Lookups) error {
			act["description"] = "Deposit: Debit card funding"
			return nil
		},
	},
	// Electronic funds transfer, matched by subtype alone whatever the type.
	{
		match: func(act Activity) bool { return str(act, "subType") == "EFT" },
		apply: func(act Activity, lk Lookups) error {
			details, err := lk.GetETFDetails(str(act, "externalCanonicalId"))
			if err != nil {
				return err
			}
			direction, side := "to", "destination"
			if str(act, "type") == "DEPOSIT" {
				direction, side = "from", "source"
			}
			var bank map[string]any
			if owner, ok := details[side].(map[string]any); ok {
				bank, _ = owner["bankAccount"].(map[string]any)
			}
			nickname := str(bank, "nickname")
			if nickname == "" {
				nickname = str(bank, "accountName")
			}
			act["description"] = fmt.Sprintf("%s: EFT %s %s %s",
				capitalize(str(act, "type")), direction, nickname, str(bank, "accountNumber"))
			return nil
		},
	},
	// Transfer fee refund.
	{
		match: func(act Activity) bool {
			return str(act, "type") == "REFUND" && str(act, "subType") == "TRANSFER_FEE_REFUND"
		},
		apply: func(act Activity, lk Lookups) error {
			act["description"] = "Reimbursement: account transfer fee"
			return nil
		},
	},
	// Institutional transfer intent, in or out.
	{
		match: func(act Activity) bool {
			if str(act, "type") != "INSTITUTIONAL_TRANSFER_INTENT" {
				return false
			}
			return str(act, "subType") == "TRANSFER_IN" || str(act, "subType") == "TRANSFER_OUT"
		},
		apply: func(act Activity, lk Lookups) error {
			if str(act, "subType") == "TRANSFER_OUT" {
				act["description"] = fmt.Sprintf("Institutional transfer: transfer to %s", str(act, "institutionName"))
				return nil
			}
			details, err := lk.GetTransferDetails(str(act, "externalCanonicalId"))
			if err != nil {
				return err
			}
			verb := capitalize(strings.ReplaceAll(str(details, "transferType"), "_", "-"))
			act["description"] = fmt.Sprintf("Institutional transfer: %s %s account transfer from %s ****%s",
				verb,
				strings.ToUpper(str(details, "clientAccountType")),
				str(details, "institutionName"),
				str(details, "redactedInstitutionAccountNumber"))
			return nil
		},
	},
	// Interest, stock-lending or generic.
	{
		match: func(act Activity) bool { return str(act, "type") == "INTEREST" },
		apply: func(act Activity, lk Lookups) error {
			if str(act, "subType") == "FPL_INTEREST" {
				act["description"] = "Stock Lending Earnings"
			} else {
				act["description"] = "Interest"
			}
			return nil
		},
	},
	// Dividend.
	{
		match: func(act Activity) bool { return str(act, "type") == "DIVIDEND" },
		apply: func(act Activity, lk Lookups) error {
			act["description"] = fmt.Sprintf("Dividend: %s", symbolOrPlaceholder(lk, str(act, "securityId")))
			return nil
		},
	},
	// Funds conversion between CAD and USD.
	{
		match: func(act Activity) bool { return str(act, "type") == "FUNDS_CONVERSION" },
		apply: func(act Activity, lk Lookups) error {
			from := "CAD"
			if str(act, "currency") == "CAD" {
				from = "USD"
			}
			act["description"] = fmt.Sprintf("Funds converted: %s from %s", str(act, "currency"), from)
			return nil
		},
	},
	// Non-resident withholding tax.
	{
		match: func(act Activity) bool { return str(act, "type") == "NON_RESIDENT_TAX" },
		apply: func(act Activity, lk Lookups) error {
			act["description"] = "Non-resident tax"
			return nil
		},
	},
	// Direct deposit or pre-authorized debit (AFT in payments.ca parlance).
	{
		match: func(act Activity) bool {
			if str(act, "type") != "DEPOSIT" && str(act, "type") != "WITHDRAWAL" {
				return false
			}
			return str(act, "subType") == "AFT"
		},
		apply: func(act Activity, lk Lookups) error {
			kind, direction := "Pre-authorized debit", "to"
			if str(act, "type") == "DEPOSIT" {
				kind, direction = "Direct deposit", "from"
			}
			institution := str(act, "aftOriginatorName")
			if institution == "" {
				institution = str(act, "externalCanonicalId")
			}
			act["description"] = fmt.Sprintf("%s: %s %s", kind, direction, institution)
			return nil
		},
	},
	// Bill payment.
	{
		match: func(act Activity) bool {
			return str(act, "type") == "WITHDRAWAL" && str(act, "subType") == "BILL_PAY"
		},
		apply: func(act Activity, lk Lookups) error {
			name := str(act, "billPayPayeeNickname")
			if name == "" {
				name = str(act, "billPayCompanyName")
			}
			act["description"] = fmt.Sprintf("%s: Bill pay %s %s",
				capitalize(str(act, "type")), name, str(act, "redactedExternalAccountNumber"))
			return nil
		},
	},
	// Peer-to-peer cash payment.
	{
		match: func(act Activity) bool {
			if str(act, "type") != "P2P_PAYMENT" {
				return false
			}
			return str(act, "subType") == "SEND" || str(act, "subType") == "SEND_RECEIVED"
		},
		apply: func(act Activity, lk Lookups) error {
			direction := "received from"
			if str(act, "subType") == "SEND" {
				direction = "sent to"
			}
			act["description"] = fmt.Sprintf("Cash %s %s", direction, str(act, "p2pHandle"))
			return nil
		},
	},
	// Promotion incentive bonus.
	{
		match: func(act Activity) bool {
			return str(act, "type") == "PROMOTION" && str(act, "subType") == "INCENTIVE_BONUS"
		},
		apply: func(act Activity, lk Lookups) error {
			act["description"] = fmt.Sprintf("%s: %s",
				capitalize(str(act, "type")),
				capitalize(strings.ReplaceAll(str(act, "subType"), "_", " ")))
			return nil
		},
	},
	// Referral with no subtype.
	{
		match: func(act Activity) bool {
			return str(act, "type") == "REFERRAL" && act["subType"] == nil
		},
		apply: func(act Activity, lk Lookups) error {
			act["description"] = capitalize(str(act, "type"))
			return nil
		},
	},
	// Credit card purchases, holds, refunds and payments.
	{
		match: func(act Activity) bool {
			if str(act, "type") == "CREDIT_CARD_PAYMENT" {
				return true
			}
			if str(act, "type") != "CREDIT_CARD" {
				return false
			}
			switch str(act, "subType") {
			case "PURCHASE", "HOLD", "REFUND", "PAYMENT":
				return true
			}
			return false
		},
		apply: describeCreditCard,
	},
	// Cashback reimbursement.
	{
		match: func(act Activity) bool {
			return str(act, "type") == "REIMBURSEMENT" && str(act, "subType") == "CASHBACK"
		},
		apply: func(act Activity, lk Lookups) error {
			if str(act, "rewardProgram") == "CREDIT_CARD_VISA_INFINITE_REWARDS" {
				act["description"] = "Cash back - Visa Infinite"
			} else {
				act["description"] = "Cash back"
			}
			return nil
		},
	},
	// Prepaid card spend.
	{
		match: func(act Activity) bool {
			return str(act, "type") == "SPEND" && str(act, "subType") == "PREPAID"
		},
		apply: func(act Activity, lk Lookups) error {
			act["description"] = fmt.Sprintf("Purchase: %s", str(act, "spendMerchant"))
			return nil
		},
	},
	// Interest charge, margin or otherwise.
	{
		match: func(act Activity) bool { return str(act, "type") == "INTEREST_CHARGE" },
		apply: func(act Activity, lk Lookups) error {
			if str(act, "subType") == "MARGIN_INTEREST" {
				act["description"] = "Interest Charge: margin interest"
			} else {
				act["description"] = "Interest Charge"
			}
			return nil
		},
	},
	// Management fee.
	{
		match: func(act Activity) bool {
			return str(act, "type") == "FEE" && str(act, "subType") == "MANAGEMENT_FEE"
		},
		apply: func(act Activity, lk Lookups) error {
			act["description"] = "Management fee"
			return nil
		},
	},
}

// describeSubdivision labels a stock split from its entitlement children:
// with both the HOLD and RECEIVE legs the before/after share counts are
// shown, otherwise the raw received amount. The activity currency, often
// null on subdivisions, is back-filled from the security's fundamentals.
func describeSubdivision(act Activity, lk Lookups) error {
	children, err := lk.GetCorporateActionChildActivities(str(act, "canonicalId"))
	if err != nil {
		return err
	}

	var held, received Activity
	for _, child := range children {
		switch str(child, "entitlementType") {
		case "HOLD":
			if held == nil {
				held = child
			}
		case "RECEIVE":
			if received == nil {
				received = child
			}
		}
	}

	if held != nil && received != nil {
		heldShares, _ := toDecimal(held["quantity"])
		receivedShares, _ := toDecimal(received["quantity"])
		act["description"] = fmt.Sprintf("Subdivision: %s -> %s shares of %s",
			heldShares, heldShares.Add(receivedShares), str(act, "assetSymbol"))
	} else {
		receivedShares, _ := toDecimal(act["amount"])
		act["description"] = fmt.Sprintf("Subdivision: Received %s new shares of %s",
			receivedShares, str(act, "assetSymbol"))
	}

	if act["currency"] == nil {
		security, err := lk.GetSecurityMarketData(str(act, "securityId"))
		if err != nil {
			return err
		}
		if security != nil {
			if currency, err := jsonpath.Get("$.fundamentals.currency", security); err == nil {
				if s, ok := currency.(string); ok {
					act["currency"] = s
				}
			}
		}
	}
	return nil
}

// describeCreditCard labels the credit card activity family. Authorized but
// unsettled purchases and holds are marked pending; posted ones come back
// with status "settled".
func describeCreditCard(act Activity, lk Lookups) error {
	pending := ""
	if str(act, "status") == "authorized" {
		pending = "(Pending) "
	}
	merchant := str(act, "spendMerchant")

	switch {
	case str(act, "type") == "CREDIT_CARD" && str(act, "subType") == "PURCHASE":
		act["description"] = fmt.Sprintf("%sCredit card purchase: %s", pending, merchant)
	case str(act, "type") == "CREDIT_CARD" && str(act, "subType") == "HOLD":
		act["description"] = fmt.Sprintf("%sCredit card refund: %s", pending, merchant)
	case str(act, "type") == "CREDIT_CARD" && str(act, "subType") == "REFUND":
		act["description"] = fmt.Sprintf("Credit card refund: %s", merchant)
	default:
		act["description"] = "Credit card payment"
	}
	return nil
}

// symbolOrPlaceholder resolves a security id to its display symbol, falling
// back to a bracketed id when the resolution fails. Only symbol resolution
// is absorbed this way; the caller still sees every other lookup failure.
func symbolOrPlaceholder(lk Lookups, securityID string) string {
	symbol, err := lk.SecurityIDToSymbol(securityID)
	if err != nil {
		return "[" + securityID + "]"
	}
	return symbol
}

// toDecimal converts the provider's loosely typed numbers (JSON numbers or
// numeric strings) to a decimal.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		d, err := decimal.NewFromString(n)
		return d, err == nil
	case int:
		return decimal.NewFromInt(int64(n)), true
	}
	return decimal.Decimal{}, false
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
