package validation

import "github.com/abcstfabu/kapparot-online/pkg/models"

var prayerTypeNames = map[models.PrayerType]string{
	models.SelfMale:      "Male (For Yourself)",
	models.SelfFemale:    "Female (For Yourself)",
	models.SelfPregnant:  "Pregnant Woman (For Yourself)",
	models.OtherMale:     "Male (For Other)",
	models.OtherFemale:   "Female (For Other)",
	models.OtherPregnant: "Pregnant Woman (For Other)",
	models.Multiple:      "Multiple Kapparot Prayers",
}

// PrayerTypeDisplayName returns the human label for a prayer category.
// Unknown categories are returned as-is.
func PrayerTypeDisplayName(p models.PrayerType) string {
	if name, ok := prayerTypeNames[p]; ok {
		return name
	}
	return string(p)
}

var paymentMethodNames = map[models.PaymentMethod]string{
	models.Stripe: "Credit Card (Stripe)",
	models.PayPal: "PayPal",
	models.Matbia: "Matbia Platform",
	models.OJC:    "OJC Donation System",
	models.Zelle:  "Zelle/QuickPay",
}

// PaymentMethodLabel returns the label written to the spreadsheet for a payment method.
// Unknown methods are returned as-is.
func PaymentMethodLabel(m models.PaymentMethod) string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return string(m)
}
