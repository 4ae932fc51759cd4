package tree

// Name pools for synthesized seed persons, weighted toward names common
// in the configured historical birth-year range.

var maleGivenNames = []string{
	"William", "James", "John", "George", "Charles", "Frank", "Joseph",
	"Thomas", "Henry", "Robert", "Edward", "Harry", "Walter", "Arthur",
	"Fred", "Albert", "Samuel", "David", "Louis", "Joe", "Charlie",
	"Clarence", "Richard", "Andrew", "Daniel", "Ernest", "Will", "Jesse",
	"Oscar", "Lewis", "Peter", "Benjamin", "Frederick", "Willie", "Alfred",
	"Sam", "Roy", "Herbert", "Jacob", "Tom", "Elmer", "Carl", "Lee",
	"Howard", "Martin", "Michael", "Bert", "Herman", "Jim", "Francis",
}

var femaleGivenNames = []string{
	"Mary", "Anna", "Emma", "Elizabeth", "Minnie", "Margaret", "Ida",
	"Alice", "Bertha", "Sarah", "Annie", "Clara", "Ella", "Florence",
	"Cora", "Martha", "Laura", "Nellie", "Grace", "Carrie", "Maude",
	"Mabel", "Bessie", "Jennie", "Gertrude", "Julia", "Hattie", "Edith",
	"Mattie", "Rose", "Catherine", "Lillian", "Ada", "Lillie", "Helen",
	"Jessie", "Louise", "Ethel", "Lula", "Myrtle", "Eva", "Frances",
	"Lena", "Lucy", "Edna", "Maggie", "Pearl", "Daisy", "Fannie", "Josephine",
}

var seedSurnames = []string{
	"Smith", "Johnson", "Williams", "Jones", "Brown", "Davis", "Miller",
	"Wilson", "Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White",
	"Harris", "Martin", "Thompson", "Garcia", "Martinez", "Robinson",
	"Clark", "Rodriguez", "Lewis", "Lee", "Walker", "Hall", "Allen",
	"Young", "Hernandez", "King", "Wright", "Lopez", "Hill", "Scott",
	"Green", "Adams", "Baker", "Gonzalez", "Nelson", "Carter", "Mitchell",
	"Perez", "Roberts", "Turner", "Phillips", "Campbell", "Parker",
	"Evans", "Edwards", "Collins",
}
