package catalog

import (
	"sort"

	"garimpo/internal/repository"
)

// rrfK é a constante do Reciprocal Rank Fusion: posição 1 vale 1/61.
const rrfK = 60

// FusedResult é um produto do catálogo com a pontuação combinada dos dois
// rankings.
type FusedResult struct {
	Product repository.ProductRow
	Score   float64
}

// FuseRanks combina o ranking léxico e o semântico por Reciprocal Rank
// Fusion: cada lista contribui 1/(posição+60) para os produtos que contém.
// Quem não aparece em nenhuma das listas (score zero) fica de fora. A soma
// dispensa calibrar escalas incompatíveis (ts_rank vs distância de cosseno).
func FuseRanks(lexical, semantic []repository.ProductRow, limit int) []FusedResult {
	scores := make(map[string]float64)
	products := make(map[string]repository.ProductRow)

	accumulate := func(ranking []repository.ProductRow) {
		for i, row := range ranking {
			scores[row.ProductID] += 1.0 / float64(i+1+rrfK)
			if _, seen := products[row.ProductID]; !seen {
				products[row.ProductID] = row
			}
		}
	}
	accumulate(lexical)
	accumulate(semantic)

	fused := make([]FusedResult, 0, len(scores))
	for id, score := range scores {
		if score <= 0 {
			continue
		}
		fused = append(fused, FusedResult{Product: products[id], Score: score})
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		// desempate estável para testes
		return fused[i].Product.ProductID < fused[j].Product.ProductID
	})

	if limit > 0 && len(fused) > limit {
		fused = fused[:limit]
	}
	return fused
}
