package project

import (
	"fmt"
	"strings"
)

// GithubActionsTemplate is a generic CI pipeline template.
const GithubActionsTemplate = `# .github/workflows/ci.yml
name: CI/CD Pipeline

on:
  push:
    branches: [ main, develop ]
  pull_request:
    branches: [ main ]

jobs:
  test:
    runs-on: ubuntu-latest

    steps:
    - uses: actions/checkout@v3

    - name: Set up Python
      uses: actions/setup-python@v4
      with:
        python-version: '3.9'

    - name: Install dependencies
      run: |
        python -m pip install --upgrade pip
        pip install -r requirements.txt

    - name: Run tests
      run: |
        pytest tests/ -v --cov=./ --cov-report=xml

    - name: Upload coverage
      uses: codecov/codecov-action@v3
`

// DockerfileTemplate is a production deployment template.
const DockerfileTemplate = `# Dockerfile for production deployment
FROM python:3.9-slim

WORKDIR /app

COPY requirements.txt .
RUN pip install --no-cache-dir -r requirements.txt

COPY . .

EXPOSE 8501

CMD ["python", "main.py"]
`

// CICDConfig renders a GitHub Actions workflow tailored to the language and
// test command. Only Python has a template; other languages yield "".
func CICDConfig(language, testCommand string) string {
	if strings.ToLower(language) != "python" {
		return ""
	}
	return fmt.Sprintf(`name: Python CI

on:
  push:
    branches: [ main, develop ]
  pull_request:
    branches: [ main ]

jobs:
  test:
    runs-on: ubuntu-latest
    strategy:
      matrix:
        python-version: [3.8, 3.9, '3.10', 3.11]

    steps:
    - uses: actions/checkout@v3

    - name: Set up Python ${{ matrix.python-version }}
      uses: actions/setup-python@v4
      with:
        python-version: ${{ matrix.python-version }}

    - name: Install dependencies
      run: |
        python -m pip install --upgrade pip
        pip install -r requirements.txt

    - name: Run tests
      run: %s

    - name: Upload coverage
      uses: codecov/codecov-action@v3
      if: matrix.python-version == '3.11'
`, testCommand)
}
