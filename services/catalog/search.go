package catalog

import "strings"

// predicate is one AND-able condition of a search query.
type predicate struct {
	expr string
	arg  any
}

const prefixMatchMinLength = 3

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPredicates turns a raw search string into per-term name
// conditions. Terms of length >= 3 use an index-friendly prefix
// pattern, shorter terms fall back to a substring pattern. An empty
// or all-whitespace query yields no predicates.
func searchPredicates(query string) []predicate {
	terms := strings.Fields(query)

	var preds []predicate
	for _, term := range terms {
		escaped := likeEscaper.Replace(term)

		var pattern string
		if len([]rune(term)) >= prefixMatchMinLength {
			pattern = escaped + "%"
		} else {
			pattern = "%" + escaped + "%"
		}
		preds = append(preds, predicate{
			expr: `products.name LIKE ? ESCAPE '\'`,
			arg:  pattern,
		})
	}
	return preds
}

// buildSearchQuery composes the predicate list into one statement,
// joining each matched product to its catalog ancestors.
func buildSearchQuery(preds []predicate, limit int) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT products.slug, products.name, products.description, products.price,
	products.subcategory_slug, products.image_url, subcollections.category_slug
FROM products
JOIN subcategories ON subcategories.slug = products.subcategory_slug
JOIN subcollections ON subcollections.id = subcategories.subcollection_id
WHERE `)

	args := make([]any, 0, len(preds)+1)
	for i, p := range preds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(p.expr)
		args = append(args, p.arg)
	}

	sb.WriteString("\nORDER BY products.name\nLIMIT ?")
	args = append(args, limit)
	return sb.String(), args
}
