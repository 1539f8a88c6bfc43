package filter

import "github.com/nikbrunner/folio/internal/model"

// CategoryAll disables the certification category filter.
const CategoryAll model.CertificationCategory = "all"

// FilterCertifications returns the certifications in category, or all of
// them for CategoryAll or an empty category.
func FilterCertifications(certs []model.Certification, category model.CertificationCategory) []model.Certification {
	if category == "" || category == CategoryAll {
		return certs
	}
	var out []model.Certification
	for _, c := range certs {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// CertificationCounts counts certifications per category. Every known
// category is present, plus CategoryAll with the total.
func CertificationCounts(certs []model.Certification) map[model.CertificationCategory]int {
	counts := map[model.CertificationCategory]int{CategoryAll: len(certs)}
	for _, c := range model.CertificationCategories() {
		counts[c] = 0
	}
	for _, c := range certs {
		counts[c.Category]++
	}
	return counts
}
