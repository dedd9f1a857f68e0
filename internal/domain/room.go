package domain

import "strings"

// RoomID is a tagged identifier of a broadcast group. The prefix encodes
// what kind of scope the room belongs to.
type RoomID string

type RoomKind string

const (
	RoomTopic    RoomKind = "topic"
	RoomChat     RoomKind = "chat_room"
	RoomPost     RoomKind = "post"
	RoomCall     RoomKind = "voip"
	RoomPersonal RoomKind = "user"
	RoomUnknown  RoomKind = ""
)

func TopicRoom(topicID string) RoomID   { return RoomID("topic_" + topicID) }
func ChatRoom(chatID string) RoomID     { return RoomID("chat_room_" + chatID) }
func PostRoom(postID string) RoomID     { return RoomID("post_" + postID) }
func CallRoom(callID CallID) RoomID     { return RoomID("voip_" + string(callID)) }
func PersonalRoom(userID UserID) RoomID { return RoomID("user_" + string(userID)) }

// Kind parses the tag prefix. "chat_room_" is checked before the shorter
// tags so it never falls into another bucket.
func (r RoomID) Kind() RoomKind {
	s := string(r)
	switch {
	case strings.HasPrefix(s, "chat_room_"):
		return RoomChat
	case strings.HasPrefix(s, "topic_"):
		return RoomTopic
	case strings.HasPrefix(s, "post_"):
		return RoomPost
	case strings.HasPrefix(s, "voip_"):
		return RoomCall
	case strings.HasPrefix(s, "user_"):
		return RoomPersonal
	default:
		return RoomUnknown
	}
}

// ScopeID strips the kind tag, leaving the external entity id
// (topic id, chat room id, call id, user id).
func (r RoomID) ScopeID() string {
	k := r.Kind()
	if k == RoomUnknown {
		return string(r)
	}
	return strings.TrimPrefix(string(r), string(k)+"_")
}

func (r RoomID) Valid() bool {
	return r.Kind() != RoomUnknown && r.ScopeID() != ""
}
