package agent

import (
	"context"

	"github.com/shellwx/finbook"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
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

			Learn about the experts' skills from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his personal finances: his accounts,
			his income and spending, and his investment projects and their returns.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor is the expert with access to search, for market context and news.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is an investment advisor,
		well aware of financial products, funds, markets and institutions,
		and of the latest related news.
		Ask the Advisor whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an investment advisor. You can search and find about anything related to
			financial institutions, companies, markets and funds. You leverage Google Search
			to ground your assertions.
				`}}},
		},
	}
}

// NewAccountant is the expert with read access to the user's book.
func NewAccountant(book *finbook.Book) *Expert {
	lib := bookFunctions(book)
	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He reads the user's finance book:
		accounts, income and expense flows, and investment projects.
		He can produce the balance sheet, the income sheet, and per-project figures.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's finance book.
				Use the available tools to extract relevant information:
				  - the balance sheet by category and currency
				  - the trailing-year income and outgoing sheet
				  - the list of investment projects and their results
				  - one project's detailed figures
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// bookFunctions builds the Accountant's tools over a loaded book.
func bookFunctions(book *finbook.Book) []Function {
	markdown := func(name string, render func(args map[string]any) string) *Func {
		return &Func{
			Decl: &genai.FunctionDeclaration{
				Name: name,
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown document.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return &genai.FunctionResponse{
					ID:   id,
					Name: name,
					Response: map[string]any{
						"output": render(args),
					},
				}
			},
		}
	}

	balance := markdown("balance_sheet", func(map[string]any) string {
		return finbook.NewBalanceSheet(book).Markdown()
	})
	balance.Decl.Description = "The balance sheet: balances by category and currency, equity, ratios."

	income := markdown("income_sheet", func(map[string]any) string {
		return finbook.NewIncomeSheet(book, finbook.Today()).Markdown()
	})
	income.Decl.Description = "Income and outgoing over the trailing 365 days, with investment income and portfolio IRR."

	projects := markdown("list_projects", func(map[string]any) string {
		return finbook.ProjectList(book, false)
	})
	projects.Decl.Description = "All investment projects with position, net value and IRR."

	stat := markdown("project_stat", func(args map[string]any) string {
		name, _ := args["project"].(string)
		p, ok := book.Project(name)
		if !ok {
			return "unknown project " + name
		}
		return finbook.ProjectStat(book, p)
	})
	stat.Decl.Description = "One project's detailed position, averages, result and records."
	stat.Decl.Parameters = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"project": {
				Type:        genai.TypeString,
				Description: "The project name.",
			},
		},
		Required: []string{"project"},
	}

	return []Function{balance, income, projects, stat}
}
