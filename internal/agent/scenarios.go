package agent

import (
	"github.com/jask/uigen/internal/component"
)

const (
	LayoutSidebarMain = "sidebar-main"
	LayoutCentered    = "centered"
	LayoutBlank       = "blank"
)

var (
	str   = component.String
	p     = component.P
	props = component.NewProps
	node  = component.New
	child = component.NodeChild
)

func style(items ...component.Prop) component.Prop {
	return p("style", component.Map(items...))
}

// Dashboard is the sidebar, navbar and card grid returned for dashboard
// and analytics prompts.
func Dashboard() *component.Plan {
	sidebar := node("Sidebar", props(p("items", component.List(
		component.Map(p("label", str("Overview")), p("active", component.Bool(true))),
		component.Map(p("label", str("Analytics")), p("active", component.Bool(false))),
		component.Map(p("label", str("Settings")), p("active", component.Bool(false))),
	))))
	navbar := node("Navbar", props(
		p("brand", str("Analytics Pro")),
		p("links", component.Strings("Profile", "Logout")),
	))
	table := node("Table", props(
		p("headers", component.Strings("ID", "User", "Amount", "Status")),
		p("rows", component.List(
			component.Strings("#123", "Alice Smith", "$450.00", "Completed"),
			component.Strings("#124", "Bob Jones", "$120.50", "Pending"),
			component.Strings("#125", "Charlie Day", "$850.00", "Completed"),
		)),
	))
	grid := node("div", props(style(
		p("padding", str("2rem")),
		p("display", str("grid")),
		p("gridTemplateColumns", str("1fr 1fr")),
		p("gap", str("1.5rem")),
	)),
		child(node("Card", props(p("title", str("Revenue"))), child(node("Chart", props(p("type", str("line"))))))),
		child(node("Card", props(p("title", str("Users"))), child(node("Chart", props(p("type", str("bar"))))))),
		child(node("Card", props(
			p("title", str("Recent Transactions")),
			style(p("gridColumn", str("span 2"))),
		), child(table))),
	)
	main := node("div", props(style(
		p("flex", component.Number(1)),
		p("display", str("flex")),
		p("flexDirection", str("column")),
	)), child(navbar), child(grid))
	root := node("div", props(style(
		p("display", str("flex")),
		p("height", str("100vh")),
	)), child(sidebar), child(main))

	return &component.Plan{Layout: LayoutSidebarMain, Components: []*component.Node{root}, ModificationType: component.Create}
}

// Login is the centred sign-in card.
func Login() *component.Plan {
	actions := node("div", props(style(
		p("display", str("flex")),
		p("justifyContent", str("flex-end")),
		p("marginTop", str("1rem")),
	)), child(node("Button", props(p("children", str("Sign In"))))))
	card := node("Card", props(
		p("title", str("Welcome Back")),
		style(p("width", str("400px"))),
	),
		child(node("Input", props(p("label", str("Email Address")), p("placeholder", str("you@example.com"))))),
		child(node("Input", props(p("label", str("Password")), p("type", str("password")), p("placeholder", str("••••••••"))))),
		child(actions),
	)
	root := node("div", props(style(
		p("display", str("flex")),
		p("justifyContent", str("center")),
		p("alignItems", str("center")),
		p("height", str("100vh")),
		p("backgroundColor", str("#f3f4f6")),
	)), child(card))

	return &component.Plan{Layout: LayoutCentered, Components: []*component.Node{root}, ModificationType: component.Create}
}

// Settings is a page with an already open settings modal.
func Settings() *component.Plan {
	actions := node("div", props(style(
		p("marginTop", str("1rem")),
		p("display", str("flex")),
		p("justifyContent", str("flex-end")),
		p("gap", str("0.5rem")),
	)),
		child(node("Button", props(p("children", str("Cancel")), p("variant", str("secondary"))))),
		child(node("Button", props(p("children", str("Save Changes"))))),
	)
	modal := node("Modal", props(p("isOpen", component.Bool(true)), p("title", str("Application Settings"))),
		child(node("Input", props(p("label", str("Display Name")), p("placeholder", str("John Doe"))))),
		child(node("Input", props(p("label", str("Email")), p("placeholder", str("john@example.com"))))),
		child(actions),
	)
	root := node("div", props(style(p("padding", str("2rem")))),
		child(node("Button", props(p("children", str("Open Settings")), p("variant", str("secondary"))))),
		child(modal),
	)

	return &component.Plan{Layout: LayoutCentered, Components: []*component.Node{root}, ModificationType: component.Create}
}

// Blank is the result for prompts that match no scenario.
func Blank() *component.Plan {
	return &component.Plan{Layout: LayoutBlank, Components: []*component.Node{}, ModificationType: component.Create}
}
