package aggtype

import (
	"github.com/geogrid-service/internal/domain"
)

// ToSearchAggs переводит упорядоченный список агрегаций в дерево "aggs"
// поискового движка: каждая следующая агрегация вкладывается в предыдущую
// bucket-агрегацию, метрики остаются листьями.
func ToSearchAggs(clauses []domain.AggregationClause) map[string]interface{} {
	root := make(map[string]interface{})
	current := root

	for _, c := range clauses {
		body := clauseBody(c)
		node := map[string]interface{}{string(c.Type): body}
		current[c.ID] = node

		if c.Schema == domain.SchemaBuckets {
			children := make(map[string]interface{})
			node["aggs"] = children
			current = children
		}
	}

	pruneEmptyAggs(root)
	return root
}

// SearchBody оборачивает дерево агрегаций в тело запроса без выдачи документов
func SearchBody(clauses []domain.AggregationClause) map[string]interface{} {
	return map[string]interface{}{
		"size": 0,
		"aggs": ToSearchAggs(clauses),
	}
}

func clauseBody(c domain.AggregationClause) map[string]interface{} {
	switch c.Type {
	case domain.ClauseFilter:
		return map[string]interface{}{
			"geo_bounding_box": c.Params.GeoBoundingBox,
		}
	case domain.ClauseGeohashGrid:
		body := map[string]interface{}{
			"field": c.Params.Field,
		}
		if c.Params.Precision != nil {
			body["precision"] = *c.Params.Precision
		}
		if c.Params.TopLeft != nil && c.Params.BottomRight != nil {
			body["bounds"] = map[string]interface{}{
				"top_left":     *c.Params.TopLeft,
				"bottom_right": *c.Params.BottomRight,
			}
		}
		return body
	default:
		return map[string]interface{}{
			"field": c.Params.Field,
		}
	}
}

// pruneEmptyAggs убирает пустые "aggs" у последней bucket-агрегации
func pruneEmptyAggs(aggs map[string]interface{}) {
	for _, v := range aggs {
		node, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		children, ok := node["aggs"].(map[string]interface{})
		if !ok {
			continue
		}
		if len(children) == 0 {
			delete(node, "aggs")
			continue
		}
		pruneEmptyAggs(children)
	}
}
