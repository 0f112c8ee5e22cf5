// Package sqlgen turns natural-language questions into validated SQL
// candidates and optional execution results.
package sqlgen

import "fmt"

const readOnlyClause = "IMPORTANT: Only generate SELECT queries. Do not generate INSERT, UPDATE, DELETE, DROP, or any other modifying queries."

func generationPrompt(question, schemaContext string, readOnly bool, maxRows int) string {
	clause := ""
	if readOnly {
		clause = readOnlyClause
	}

	return fmt.Sprintf(`You are a SQL expert. Convert the following natural language query to SQL using the provided database schema.

%s

Database Schema:
%s

Natural Language Query: "%s"

Requirements:
1. Generate only valid MySQL SQL syntax
2. Use proper table and column names from the schema
3. Include appropriate JOINs when querying multiple tables
4. Limit results to %d rows maximum
5. Use clear, readable SQL formatting
6. Add comments to explain complex parts of the query

Generate the SQL query:`, clause, schemaContext, question, maxRows)
}

func explanationPrompt(question, sqlText, schemaContext string) string {
	return fmt.Sprintf(`Explain the following SQL query in simple terms.

Natural Language Query: "%s"

Generated SQL:
%s

Database Schema Context:
%s

Please provide a clear explanation of:
1. What the query does
2. Which tables and columns are involved
3. Any joins or relationships used
4. The expected results

Explanation:`, question, sqlText, schemaContext)
}
