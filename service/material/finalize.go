package material

import entity "coilgen.GO/model/entity"

// Finalize shuffles the corpus in place on the generator's stream and
// renumbers coil ids densely from HC000001 in the new order.
func (g *Generator) Finalize(corpus []entity.Material) []entity.Material {
	g.rng.Shuffle(len(corpus), func(i, j int) {
		corpus[i], corpus[j] = corpus[j], corpus[i]
	})
	for i := range corpus {
		corpus[i].CoilID = CoilID(i + 1)
	}
	return corpus
}
