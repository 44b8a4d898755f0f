package seed

import (
	"time"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

const fence = "```"

// Samples returns the built-in starter collection, f1 through f8.
// Each call returns fresh values.
func Samples() []domain.Fragment {
	return []domain.Fragment{
		{
			ID:    "f1",
			Title: "Understanding React Hooks",
			Content: "React Hooks were introduced in React 16.8 to allow developers to use state and other " +
				"React features without writing a class component. They enable better code reuse, " +
				"organization, and allow splitting one component into smaller functions based on related pieces.",
			Type:      domain.FragmentTypeText,
			Tags:      []string{"programming", "react", "web development"},
			CreatedAt: at("2023-01-15T12:00:00Z"),
			UpdatedAt: at("2023-01-15T12:00:00Z"),
		},
		{
			ID:        "f2",
			Title:     "How to Build a Neural Network from Scratch",
			Content:   "https://www.youtube.com/watch?v=Wo5dMEP_BbI",
			Type:      domain.FragmentTypeVideo,
			Tags:      []string{"machine learning", "programming", "python", "neural networks"},
			CreatedAt: at("2023-02-20T10:30:00Z"),
			UpdatedAt: at("2023-02-20T10:30:00Z"),
		},
		{
			ID:        "f3",
			Title:     "MDN Web Docs - JavaScript Reference",
			Content:   "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference",
			Type:      domain.FragmentTypeWebsite,
			Tags:      []string{"programming", "javascript", "web development", "reference"},
			CreatedAt: at("2023-03-05T14:45:00Z"),
			UpdatedAt: at("2023-03-05T14:45:00Z"),
		},
		{
			ID:        "f4",
			Title:     "Optimizing React Performance with useMemo",
			Content:   fence + "jsx\n" + useMemoSnippet + fence,
			Type:      domain.FragmentTypeCode,
			Tags:      []string{"programming", "react", "web development", "optimization"},
			CreatedAt: at("2023-04-10T09:20:00Z"),
			UpdatedAt: at("2023-04-10T09:20:00Z"),
		},
		{
			ID:        "f5",
			Title:     "Gymnopédie No.1 - Erik Satie",
			Content:   "https://www.youtube.com/watch?v=S-Xm7s9eGxU",
			Type:      domain.FragmentTypeSong,
			Tags:      []string{"music", "classical", "piano", "relaxing"},
			CreatedAt: at("2023-05-18T16:15:00Z"),
			UpdatedAt: at("2023-05-18T16:15:00Z"),
		},
		{
			ID:    "f6",
			Title: "Advanced CSS Grid Techniques",
			Content: "CSS Grid is a powerful layout system that allows for complex two-dimensional layouts. " +
				"Some advanced techniques include named grid areas, auto-fit/auto-fill with minmax, and " +
				"masonry-style layouts using grid-template-rows: masonry (experimental).",
			Type:      domain.FragmentTypeText,
			Tags:      []string{"programming", "css", "web development", "layout"},
			CreatedAt: at("2023-06-22T11:10:00Z"),
			UpdatedAt: at("2023-06-22T11:10:00Z"),
		},
		{
			ID:        "f7",
			Title:     "Setup Docker for Development Environment",
			Content:   fence + "bash\n" + dockerSnippet + fence,
			Type:      domain.FragmentTypeCode,
			Tags:      []string{"programming", "docker", "devops", "environment setup"},
			CreatedAt: at("2023-07-30T15:40:00Z"),
			UpdatedAt: at("2023-07-30T15:40:00Z"),
		},
		{
			ID:    "f8",
			Title: "Meditation Basics for Beginners",
			Content: "Meditation is a practice where an individual uses a technique, such as mindfulness, " +
				"or focusing the mind on a particular object, thought, or activity, to train attention and " +
				"awareness, and achieve a mentally clear and emotionally calm and stable state.",
			Type:      domain.FragmentTypeText,
			Tags:      []string{"wellness", "meditation", "mindfulness", "health"},
			CreatedAt: at("2023-08-14T08:25:00Z"),
			UpdatedAt: at("2023-08-14T08:25:00Z"),
		},
	}
}

const useMemoSnippet = `function ExpensiveComponent({ data }) {
  // This calculation will only re-run when data changes
  const processedData = React.useMemo(() => {
    return data.map(item => {
      return { ...item, calculated: item.value * 2 };
    });
  }, [data]);

  return (
    <div>
      {processedData.map(item => (
        <div key={item.id}>{item.calculated}</div>
      ))}
    </div>
  );
}
`

const dockerSnippet = `# Create a Docker Compose file
cat > docker-compose.yml << EOF
version: '3'
services:
  app:
    image: node:16
    volumes:
      - ./:/app
    working_dir: /app
    ports:
      - "3000:3000"
    command: npm start
  db:
    image: postgres:14
    environment:
      POSTGRES_PASSWORD: example
      POSTGRES_USER: user
      POSTGRES_DB: mydb
    ports:
      - "5432:5432"
EOF

# Start the containers
docker-compose up -d
`

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
