package model

// CertificationCategory classifies certifications for filtering.
type CertificationCategory string

const (
	CertTechnical    CertificationCategory = "technical"
	CertProfessional CertificationCategory = "professional"
	CertLanguage     CertificationCategory = "language"
	CertOther        CertificationCategory = "other"
)

// CertificationCategories returns the categories in display order.
func CertificationCategories() []CertificationCategory {
	return []CertificationCategory{CertTechnical, CertProfessional, CertLanguage, CertOther}
}

// Valid reports whether c is a known category.
func (c CertificationCategory) Valid() bool {
	switch c {
	case CertTechnical, CertProfessional, CertLanguage, CertOther:
		return true
	}
	return false
}

// Certification is a professional credential.
type Certification struct {
	ID            string                `json:"id" yaml:"id"`
	Name          string                `json:"name" yaml:"name"`
	Issuer        string                `json:"issuer" yaml:"issuer"`
	IssueDate     string                `json:"issueDate" yaml:"issueDate"`
	ExpiryDate    string                `json:"expiryDate,omitempty" yaml:"expiryDate"`
	CredentialID  string                `json:"credentialId" yaml:"credentialId"`
	CredentialURL string                `json:"credentialUrl,omitempty" yaml:"credentialUrl"`
	Category      CertificationCategory `json:"category" yaml:"category"`
	Skills        []string              `json:"skills" yaml:"skills"`
	Description   string                `json:"description,omitempty" yaml:"description"`
}
