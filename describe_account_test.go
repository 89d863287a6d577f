package wealthsimple

import "testing"

func TestDescribeAccount(t *testing.T) {
	tests := []struct {
		name            string
		account         Account
		wantDescription string
		wantNumber      string
	}{
		{
			name: "nickname wins over everything",
			account: Account{
				"id": "acct-1", "nickname": "Vacation fund", "unifiedAccountType": "CASH",
			},
			wantDescription: "Vacation fund",
			wantNumber:      "acct-1",
		},
		{
			name:            "no custodians keeps the account id as number",
			account:         Account{"id": "acct-2", "unifiedAccountType": "SELF_DIRECTED_TFSA"},
			wantDescription: "TFSA: self-directed",
			wantNumber:      "acct-2",
		},
		{
			name: "last open in-house custodian wins",
			account: Account{
				"id": "acct-3", "unifiedAccountType": "MANAGED_RRSP",
				"custodianAccounts": []any{
					map[string]any{"id": "WS-111", "branch": "WS", "status": "open"},
					map[string]any{"id": "XX-222", "branch": "XX", "status": "open"},
					map[string]any{"id": "TR-333", "branch": "TR", "status": "closed"},
					map[string]any{"id": "TR-444", "branch": "TR", "status": "open"},
				},
			},
			wantDescription: "RRSP: managed",
			wantNumber:      "TR-444",
		},
		{
			name:            "cash single owner",
			account:         Account{"id": "acct-4", "unifiedAccountType": "CASH"},
			wantDescription: "Cash",
			wantNumber:      "acct-4",
		},
		{
			name: "cash joint",
			account: Account{
				"id": "acct-5", "unifiedAccountType": "CASH",
				"accountOwnerConfiguration": "MULTI_OWNER",
			},
			wantDescription: "Cash: joint",
			wantNumber:      "acct-5",
		},
		{
			name: "managed non-registered private credit",
			account: Account{
				"id": "acct-6", "unifiedAccountType": "MANAGED_NON_REGISTERED",
				"accountFeatures": []any{map[string]any{"name": "PRIVATE_CREDIT"}},
			},
			wantDescription: "Non-registered: managed - private credit",
			wantNumber:      "acct-6",
		},
		{
			name: "managed non-registered private equity",
			account: Account{
				"id": "acct-7", "unifiedAccountType": "MANAGED_NON_REGISTERED",
				"accountFeatures": []any{map[string]any{"name": "PRIVATE_EQUITY"}},
			},
			wantDescription: "Non-registered: managed - private equity",
			wantNumber:      "acct-7",
		},
		{
			name: "managed non-registered without private features keeps raw type",
			account: Account{
				"id": "acct-8", "unifiedAccountType": "MANAGED_NON_REGISTERED",
			},
			wantDescription: "MANAGED_NON_REGISTERED",
			wantNumber:      "acct-8",
		},
		{
			name:            "unknown type keeps raw type",
			account:         Account{"id": "acct-9", "unifiedAccountType": "SOME_NEW_TYPE"},
			wantDescription: "SOME_NEW_TYPE",
			wantNumber:      "acct-9",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DescribeAccount(tc.account)
			if str(got, "description") != tc.wantDescription {
				t.Errorf("description = %q, want %q", str(got, "description"), tc.wantDescription)
			}
			if str(got, "number") != tc.wantNumber {
				t.Errorf("number = %q, want %q", str(got, "number"), tc.wantNumber)
			}
		})
	}
}

func TestDescribeAccountPreservesInput(t *testing.T) {
	account := Account{"id": "acct-1", "unifiedAccountType": "CASH", "currency": "CAD"}
	got := DescribeAccount(account)

	if _, ok := account["description"]; ok {
		t.Error("DescribeAccount() mutated its input")
	}
	if str(got, "currency") != "CAD" {
		t.Errorf("augmented copy lost field currency = %q, want CAD", str(got, "currency"))
	}
}
