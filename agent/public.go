package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/wealthsimple"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his Wealthsimple accounts: what he holds,
			what happened in his activity feed, and how the securities he owns are doing.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request. The user will assume that you already looked at his accounts.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the search-grounded market analyst expert.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products, institutions and the latest news
		about funds and companies.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find anything related to
			financial institutions, companies, markets and funds. You leverage Google Search
			to ground your assertions, and you know how to relate the latest news to the
			user's request.
				`}}},
		},
	}
}

// NewBroker creates the expert with access to the user's brokerage data,
// backed by the logged-in client.
func NewBroker(client *wealthsimple.Client) *Expert {
	lib := brokerLibrary(client)

	return &Expert{
		Name: "Broker",
		Description: `This is the Broker. He has read access to the user's Wealthsimple
		accounts: the list of accounts, their balances, and the activity feed of each.
		Ask the Broker anything about what the user owns or what happened in his accounts.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a broker with read access to the user's Wealthsimple accounts.
				You know how to use the Tools to extract information about the user's accounts:
				  - list of accounts with their description and value
				  - balances of an account
				  - activity feed of an account
				You are part of a team of experts; yours is everything held at Wealthsimple.
				Pardon their approximative language and figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// brokerLibrary exposes the read-only client lookups as model functions.
func brokerLibrary(client *wealthsimple.Client) []Function {
	respond := func(id, name string, output string, err error) *genai.FunctionResponse {
		resp := &genai.FunctionResponse{ID: id, Name: name}
		if err != nil {
			resp.Response = map[string]any{"error": err.Error()}
		} else {
			resp.Response = map[string]any{"output": output}
		}
		return resp
	}

	accounts := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Accounts",
			Description: "Accounts lists the user's open accounts with their description, account id and number.",
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the accounts with their id, number and description.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			out, err := accountsMarkdown(client)
			return respond(id, "Accounts", out, err)
		},
	}

	balances := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Balances",
			Description: "Balances lists the holdings of one account, one row per held security plus the cash entries.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"account_id": {
						Type:        genai.TypeString,
						Description: "The account id, as returned by Accounts.",
					},
				},
				Required: []string{"account_id"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of security ids and quantities.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			accountID, _ := args["account_id"].(string)
			out, err := balancesMarkdown(client, accountID)
			return respond(id, "Balances", out, err)
		},
	}

	activities := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Activities",
			Description: "Activities lists the most recent activities of one account, with a human-readable description of each.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"account_id": {
						Type:        genai.TypeString,
						Description: "The account id, as returned by Accounts.",
					},
				},
				Required: []string{"account_id"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of dates, descriptions and amounts, most recent first.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			accountID, _ := args["account_id"].(string)
			out, err := activitiesMarkdown(client, accountID)
			return respond(id, "Activities", out, err)
		},
	}

	return []Function{accounts, balances, activities}
}

func accountsMarkdown(client *wealthsimple.Client) (string, error) {
	accounts, err := client.GetAccounts(true, true)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("| Id | Number | Description |\n|---|---|---|\n")
	for _, account := range accounts {
		fmt.Fprintf(&b, "| %v | %v | %v |\n", account["id"], account["number"], account["description"])
	}
	return b.String(), nil
}

func balancesMarkdown(client *wealthsimple.Client, accountID string) (string, error) {
	balances, err := client.GetAccountBalances(accountID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("| Security | Quantity |\n|---|---|\n")
	for id, quantity := range balances {
		fmt.Fprintf(&b, "| %s | %v |\n", id, quantity)
	}
	return b.String(), nil
}

func activitiesMarkdown(client *wealthsimple.Client, accountID string) (string, error) {
	activities, err := client.GetActivities(accountID, nil)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("| Date | Description | Amount | Currency |\n|---|---|---|---|\n")
	for _, activity := range activities {
		fmt.Fprintf(&b, "| %v | %v | %v | %v |\n",
			activity["occurredAt"], activity["description"], activity["amount"], activity["currency"])
	}
	return b.String(), nil
}
