// Package token issues and verifies the signed bearer tokens used for
// authentication. Tokens carry {id, username, role} claims signed with HS256;
// downstream authorization trusts the decoded role.
package token
