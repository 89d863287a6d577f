package wealthsimple

import "maps"

// accountTypeDescriptions maps unified account types to the labels shown in
// the provider's own application. Types absent from the table keep their raw
// type code.
var accountTypeDescriptions = map[string]string{
	"SELF_DIRECTED_RRSP":                 "RRSP: self-directed",
	"MANAGED_RRSP":                       "RRSP: managed",
	"SELF_DIRECTED_SPOUSAL_RRSP":         "RRSP: self-directed spousal",
	"SELF_DIRECTED_TFSA":                 "TFSA: self-directed",
	"MANAGED_TFSA":                       "TFSA: managed",
	"SELF_DIRECTED_FHSA":                 "FHSA: self-directed",
	"MANAGED_FHSA":                       "FHSA: managed",
	"SELF_DIRECTED_NON_REGISTERED":       "Non-registered: self-directed",
	"SELF_DIRECTED_JOINT_NON_REGISTERED": "Non-registered: self-directed - joint",
	"SELF_DIRECTED_NON_REGISTERED_MARGIN": "Non-registered: self-directed margin",
	"MANAGED_JOINT":                      "Non-registered: managed - joint",
	"SELF_DIRECTED_CRYPTO":               "Crypto",
	"SELF_DIRECTED_RRIF":                 "RRIF: self-directed",
	"SELF_DIRECTED_SPOUSAL_RRIF":         "RRIF: self-directed spousal",
	"CREDIT_CARD":                        "Credit card",
	"SELF_DIRECTED_LIRA":                 "LIRA: self-directed",
}

// DescribeAccount returns a copy of the account augmented with the computed
// "number" and "description" fields; all other fields are preserved
// unchanged.
//
// The number defaults to the account's own id, overridden by the id of any
// open custodian sub-account at an in-house branch (the account number
// visible in the application). When several qualify, the last one in list
// order wins.
func DescribeAccount(account Account) Account {
	out := maps.Clone(account)

	number := str(account, "id")
	if custodians, ok := account["custodianAccounts"].([]any); ok {
		for _, e := range custodians {
			ca, ok := e.(map[string]any)
			if !ok {
				continue
			}
			branch := str(ca, "branch")
			if (branch == "WS" || branch == "TR") && str(ca, "status") == "open" {
				number = str(ca, "id")
			}
		}
	}
	out["number"] = number

	if nickname := str(account, "nickname"); nickname != "" {
		out["description"] = nickname
		return out
	}

	accountType := str(account, "unifiedAccountType")
	switch accountType {
	case "CASH":
		// Joint cash accounts are labeled distinctly.
		if str(account, "accountOwnerConfiguration") == "MULTI_OWNER" {
			out["description"] = "Cash: joint"
		} else {
			out["description"] = "Cash"
		}
	case "MANAGED_NON_REGISTERED":
		// The label depends on which private asset feature is enabled.
		features := make(map[string]bool)
		if fs, ok := account["accountFeatures"].([]any); ok {
			for _, e := range fs {
				if f, ok := e.(map[string]any); ok {
					features[str(f, "name")] = true
				}
			}
		}
		switch {
		case features["PRIVATE_CREDIT"]:
			out["description"] = "Non-registered: managed - private credit"
		case features["PRIVATE_EQUITY"]:
			out["description"] = "Non-registered: managed - private equity"
		default:
			out["description"] = accountType
		}
	default:
		if description, ok := accountTypeDescriptions[accountType]; ok {
			out["description"] = description
		} else {
			out["description"] = accountType
		}
	}
	return out
}
