package scraper

import (
	"regexp"
	"strings"
)

// URLClass é o veredito heurístico sobre o que uma URL pode render.
type URLClass int

const (
	// URLProduct é o padrão: página de um produto único, vale o fetch.
	URLProduct URLClass = iota
	// URLListing é busca/categoria/vitrine: nunca rende um preço único.
	URLListing
	// URLRejected é login/carrinho/rede social: nunca vale o fetch.
	URLRejected
)

func (c URLClass) String() string {
	switch c {
	case URLListing:
		return "LISTING"
	case URLRejected:
		return "REJECTED"
	default:
		return "PRODUCT"
	}
}

// A blacklist ganha de qualquer outro padrão.
var urlBlacklist = []string{
	"youtube.com", "instagram.com", "facebook.com",
	"login", "signin", "cadastro", "reclameaqui", "buscacep",
	"/cart", "/checkout", "/minha-conta",
}

var listingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/s\?k=`),
	regexp.MustCompile(`search`),
	regexp.MustCompile(`busca`),
	regexp.MustCompile(`lista`),
	regexp.MustCompile(`/b/`),
	regexp.MustCompile(`category`),
	regexp.MustCompile(`nav`),
	regexp.MustCompile(`\?q=`),
	regexp.MustCompile(`shop/`),
	regexp.MustCompile(`promocao`),
	regexp.MustCompile(`ofertas`),
	regexp.MustCompile(`/c/`),
	regexp.MustCompile(`/d/`),
	regexp.MustCompile(`/cat/`),
	regexp.MustCompile(`departamento`),
	regexp.MustCompile(`categoria`),
	regexp.MustCompile(`secao`),
	regexp.MustCompile(`colecao`),
	regexp.MustCompile(`linha`),
	regexp.MustCompile(`marcas`),
	regexp.MustCompile(`/produtos\?`),
	regexp.MustCompile(`/todos-os-produtos`),
}

// ClassifyURL decide, sem tocar na rede, se um link merece um fetch.
// Função pura: só casa padrões de substring na URL.
func ClassifyURL(rawURL string) URLClass {
	lower := strings.ToLower(rawURL)

	for _, bad := range urlBlacklist {
		if strings.Contains(lower, bad) {
			return URLRejected
		}
	}

	for _, pattern := range listingPatterns {
		if pattern.MatchString(lower) {
			return URLListing
		}
	}

	return URLProduct
}
