package authorization

import (
	"log"
	"os"

	"github.com/cristalhq/jwt/v4"
	"github.com/karansingh008/Tourizio/domain"
)

var jwtKey = []byte(os.Getenv("SECRET_KEY"))

var verifier, _ = jwt.NewVerifierHS(jwt.HS256, jwtKey)

func GenerateToken(claims *domain.Claims) (string, error) {

	key := []byte(os.Getenv("SECRET_KEY"))
	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		log.Println(err)
		return "", err
	}

	builder := jwt.NewBuilder(signer)

	token, err := builder.Build(claims)
	if err != nil {
		log.Println(err)
		return "", err
	}

	return token.String(), nil
}

func GetToken(tokenString string) *jwt.Token {
	token, err := jwt.Parse([]byte(tokenString), verifier)
	if err != nil {
		log.Println(err)
	}
	return token
}

func ParseClaims(tokenString string) (*domain.Claims, error) {
	var claims domain.Claims

	err := jwt.ParseClaims([]byte(tokenString), verifier, &claims)
	if err != nil {
		log.Println(err)
		return nil, err
	}

	return &claims, nil
}
