package driver

const (
	SaveRunQuery = `
		MERGE (r:Run {id: $id})
		SET r.created_at = $created_at,
			r.epsilon = $epsilon,
			r.cluster_count = $cluster_count,
			r.keep_central = $keep_central
		RETURN r.id AS id
	`

	SaveProblemNodeQuery = `
		MERGE (n:Problem {id: $id})
		SET n.cluster = $cluster,
			n.distance_to_centroid = $distance,
			n.removed = $removed
		RETURN n.id AS id
	`

	SaveDuplicateEdgeQuery = `
		MATCH (head:Problem {id: $head_id})
		MATCH (dup:Problem {id: $dup_id})
		MERGE (dup)-[e:DUPLICATE_OF {run_id: $run_id}]->(head)
		SET e.created_at = $created_at
		RETURN e.run_id AS run_id
	`

	GetDuplicateGroupQuery = `
		MATCH (dup:Problem)-[e:DUPLICATE_OF {run_id: $run_id}]->(head:Problem {id: $head_id})
		RETURN dup.id AS id
	`

	GetRemovedProblemsQuery = `
		MATCH (n:Problem {removed: true})
		RETURN n.id AS id
	`
)
