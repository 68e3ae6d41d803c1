package interviews

// fallbackQuestions is the static quiz served when generation is unavailable.
func fallbackQuestions() []Question {
	return []Question{
		{
			Question:      "Which HTTP method is idempotent?",
			Options:       []string{"POST", "PUT", "PATCH", "CREATE"},
			CorrectAnswer: "PUT",
			Explanation:   "PUT is idempotent; multiple identical requests have the same effect.",
		},
		{
			Question: "What does ACID stand for in databases?",
			Options: []string{
				"Atomicity, Consistency, Isolation, Durability",
				"Availability, Consistency, Isolation, Durability",
				"Atomicity, Concurrency, Integrity, Durability",
				"Availability, Concurrency, Integrity, Durability",
			},
			CorrectAnswer: "Atomicity, Consistency, Isolation, Durability",
			Explanation:   "ACID describes key transaction properties in RDBMS.",
		},
		{
			Question:      "Which is NOT a JavaScript primitive?",
			Options:       []string{"string", "number", "object", "boolean"},
			CorrectAnswer: "object",
			Explanation:   "Objects are reference types, not primitives.",
		},
		{
			Question:      "In Git, which command creates a new branch and switches to it?",
			Options:       []string{"git checkout -b", "git branch -m", "git switch -c", "Both 1 and 3"},
			CorrectAnswer: "Both 1 and 3",
			Explanation:   "Both 'git checkout -b' and 'git switch -c' create and switch.",
		},
		{
			Question:      "Which Big-O represents binary search on a sorted array?",
			Options:       []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"},
			CorrectAnswer: "O(log n)",
			Explanation:   "Binary search halves the search space each step.",
		},
		{
			Question: "What is the purpose of a load balancer?",
			Options: []string{
				"Distribute traffic across servers",
				"Store session data",
				"Encrypt database records",
				"Compile application code",
			},
			CorrectAnswer: "Distribute traffic across servers",
			Explanation:   "Balances requests for availability and performance.",
		},
		{
			Question: "What does 'idempotent' mean in REST APIs?",
			Options: []string{
				"Multiple identical requests result in the same state",
				"The server never returns errors",
				"The request has no side effects",
				"The response is always cached",
			},
			CorrectAnswer: "Multiple identical requests result in the same state",
			Explanation:   "Idempotency allows safe retries.",
		},
		{
			Question:      "Which SQL clause filters rows?",
			Options:       []string{"ORDER BY", "GROUP BY", "WHERE", "JOIN"},
			CorrectAnswer: "WHERE",
			Explanation:   "WHERE filters rows before grouping.",
		},
		{
			Question:      "Which AWS service is serverless compute?",
			Options:       []string{"EC2", "Lambda", "ECS", "EBS"},
			CorrectAnswer: "Lambda",
			Explanation:   "Lambda runs code without managing servers.",
		},
		{
			Question:      "Which data structure is best for LRU cache?",
			Options:       []string{"Stack", "Queue", "HashMap + Doubly Linked List", "Binary Tree"},
			CorrectAnswer: "HashMap + Doubly Linked List",
			Explanation:   "Enables O(1) get/put and eviction.",
		},
	}
}
