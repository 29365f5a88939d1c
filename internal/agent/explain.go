package agent

import "github.com/jask/uigen/internal/component"

const (
	explainDashboard = "I've generated a dashboard layout with a collapsible sidebar and a main content area. \n\nRationale:\n- **Sidebar**: Provides persistent navigation for complex apps.\n- **Cards**: Used to group related metrics (Revenue, Users) for better scanability.\n- **Charts**: Visual data representation for quick insights.\n- **Table**: Detailed transaction history in a structured format."
	explainCentered  = "I've created a focused, centered layout typically used for authentication or single-action pages.\n\nRationale:\n- **Centering**: Draws full attention to the form.\n- **Card Container**: Groups input fields visually against the background.\n- **Primary Button**: clear call-to-action for the user."
	explainBlank     = "I couldn't understand the request fully. Please try asking for a 'dashboard', 'login form', or 'settings modal'."
	explainOther     = "I've updated the UI based on your request, ensuring all components adhere to the strict design system."
)

// Explain returns the rationale shown next to a plan, chosen by layout.
func Explain(p *component.Plan) string {
	if p == nil {
		return explainBlank
	}
	switch p.Layout {
	case LayoutSidebarMain:
		return explainDashboard
	case LayoutCentered:
		return explainCentered
	case LayoutBlank:
		return explainBlank
	default:
		return explainOther
	}
}
