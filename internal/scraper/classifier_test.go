package scraper

import "testing"

func TestClassifyURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want URLClass
	}{
		{"product page", "https://www.amazon.com.br/dp/B0ABC123", URLProduct},
		{"mercadolivre item", "https://produto.mercadolivre.com.br/MLB-123-iphone", URLProduct},
		{"login", "https://loja.com.br/login", URLRejected},
		{"signin", "https://loja.com.br/signin?next=/", URLRejected},
		{"cart", "https://loja.com.br/cart", URLRejected},
		{"checkout", "https://loja.com.br/checkout/step1", URLRejected},
		{"social", "https://www.youtube.com/watch?v=abc", URLRejected},
		{"amazon search", "https://www.amazon.com.br/s?k=iphone", URLListing},
		{"busca", "https://loja.com.br/busca?termo=tv", URLListing},
		{"categoria", "https://loja.com.br/categoria/eletronicos", URLListing},
		{"query param", "https://loja.com.br/resultado?q=notebook", URLListing},
		{"department", "https://loja.com.br/departamento/informatica", URLListing},
		{"short category path", "https://loja.com.br/c/geladeiras", URLListing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyURL(tc.url); got != tc.want {
				t.Errorf("ClassifyURL(%q) = %s, want %s", tc.url, got, tc.want)
			}
		})
	}

	t.Run("blacklist wins over listing patterns", func(t *testing.T) {
		// contém "busca" (padrão de listagem) mas também "login"
		url := "https://loja.com.br/busca/login"
		if got := ClassifyURL(url); got != URLRejected {
			t.Errorf("ClassifyURL(%q) = %s, want REJECTED", url, got)
		}
	})
}
