package consistency

// LiveKeys número de claves con bloqueo vivo, para verificar que las entradas se liberan.
func (g *Guard) LiveKeys() int {
	return g.designations.size() + g.articles.size() + g.emails.size()
}
