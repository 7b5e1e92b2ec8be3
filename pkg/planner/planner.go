package planner

import (
	"fmt"

	"github.com/bisegni/tabl/pkg/plan"
	"github.com/bisegni/tabl/pkg/query"
	"github.com/bisegni/tabl/pkg/reduce"
	"github.com/bisegni/tabl/pkg/tabio"
)

// CreatePlan turns a parsed SELECT into an executable plan tree. FROM names
// resolve against the catalog; a query without FROM reads the catalog's
// default table, and a subquery in FROM plans recursively beneath its outer
// query.
func CreatePlan(q *query.SelectQuery, catalog *tabio.Catalog) (plan.Node, error) {
	var node plan.Node

	switch {
	case q.FromQuery != nil:
		sub, err := CreatePlan(q.FromQuery, catalog)
		if err != nil {
			return nil, err
		}
		node = sub
	case q.From != "":
		t, err := catalog.Get(q.From)
		if err != nil {
			return nil, err
		}
		node = &plan.ScanNode{TableName: q.From, Table: t}
	default:
		t, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		node = &plan.ScanNode{TableName: catalog.DefaultName(), Table: t}
	}

	if q.Filter != nil {
		node = &plan.FilterNode{Input: node, Expression: q.Filter}
	}

	hasAggregate := false
	for _, f := range q.Fields {
		if f.Aggregate != "" {
			hasAggregate = true
			break
		}
	}

	if hasAggregate || len(q.GroupBy) > 0 {
		if q.Star {
			return nil, fmt.Errorf("SELECT * cannot be combined with GROUP BY")
		}
		agg := reduce.NewAggregation()
		var aggCols []string
		for _, f := range q.Fields {
			if f.Aggregate == "" {
				if !containsField(q.GroupBy, f.Name) {
					return nil, fmt.Errorf("field %q must be aggregated or listed in GROUP BY", f.Name)
				}
				continue
			}
			spec, err := AggSpecFor(f)
			if err != nil {
				return nil, err
			}
			agg.Set(f.OutName(), spec)
			aggCols = append(aggCols, f.OutName())
		}
		node = &plan.AggregateNode{Input: node, GroupBy: q.GroupBy, Agg: agg, Columns: aggCols}
	}

	if !q.Star && len(q.Fields) > 0 {
		cols := make([]string, 0, len(q.Fields))
		renames := make(map[string]string)
		for _, f := range q.Fields {
			if f.Aggregate == "" {
				cols = append(cols, f.Name)
				if f.Alias != "" && f.Alias != f.Name {
					renames[f.Name] = f.Alias
				}
			} else {
				cols = append(cols, f.OutName())
			}
		}
		node = &plan.ProjectNode{Input: node, Columns: cols, Renames: renames}
	}

	if q.Distinct {
		node = &plan.DistinctNode{Input: node}
	}

	if len(q.OrderBy) > 0 {
		node = &plan.SortNode{Input: node, Keys: q.OrderBy}
	}

	if q.Limit >= 0 {
		node = &plan.LimitNode{Input: node, N: q.Limit}
	}

	return node, nil
}

// AggSpecFor maps one aggregate-function field onto its reduction spec.
func AggSpecFor(f query.Field) (reduce.AggSpec, error) {
	switch f.Aggregate {
	case "COUNT":
		if f.Star {
			return reduce.Count(), nil
		}
		return reduce.CountNotNil(f.Name), nil
	case "SUM":
		return reduce.Sum(f.Name), nil
	case "MIN":
		return reduce.Min(f.Name), nil
	case "MAX":
		return reduce.Max(f.Name), nil
	case "AVG":
		return reduce.Mean(f.Name), nil
	case "FIRST":
		return reduce.First(f.Name), nil
	case "LAST":
		return reduce.Last(f.Name), nil
	case "LIST":
		return reduce.List(f.Name), nil
	case "STRJOIN":
		return reduce.StrJoin(f.Name, f.Sep), nil
	default:
		return reduce.AggSpec{}, fmt.Errorf("unknown aggregate function %q", f.Aggregate)
	}
}

func containsField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}
