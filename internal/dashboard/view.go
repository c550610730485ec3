package dashboard

import "fmt"

// Tab is a dashboard section.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabSettings  Tab = "settings"
)

// NoFAQ means every FAQ entry is collapsed.
const NoFAQ = -1

// View is the navigation state of the UI.
type View struct {
	tab        Tab
	modalOpen  bool
	mobileMenu bool
	faq        int
}

// NewView starts on the dashboard tab with everything closed.
func NewView() *View {
	return &View{tab: TabDashboard, faq: NoFAQ}
}

// Tab returns the active tab.
func (v *View) Tab() Tab { return v.tab }

// SetTab switches tabs. Unknown tabs are rejected.
func (v *View) SetTab(t Tab) error {
	switch t {
	case TabDashboard, TabSettings:
		v.tab = t
		return nil
	}
	return fmt.Errorf("unknown tab %q", t)
}

// OpenModal shows the modal.
func (v *View) OpenModal() { v.modalOpen = true }

// CloseModal hides the modal. Escape and backdrop clicks both end here.
func (v *View) CloseModal() { v.modalOpen = false }

// ModalOpen reports whether the modal is showing.
func (v *View) ModalOpen() bool { return v.modalOpen }

// ToggleMobileMenu flips the collapsed navigation menu.
func (v *View) ToggleMobileMenu() { v.mobileMenu = !v.mobileMenu }

// MobileMenuOpen reports whether the navigation menu is expanded.
func (v *View) MobileMenuOpen() bool { return v.mobileMenu }

// ToggleFAQ expands entry i and collapses any other. Toggling the open
// entry collapses it.
func (v *View) ToggleFAQ(i int) {
	if i < 0 || v.faq == i {
		v.faq = NoFAQ
		return
	}
	v.faq = i
}

// ExpandedFAQ returns the open entry index, or NoFAQ.
func (v *View) ExpandedFAQ() int { return v.faq }
